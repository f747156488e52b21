package handler

import (
	"context"
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/policy"
	companyuc "jobboard/internal/usecase/company"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CompanyUsecase interface {
	Create(ctx context.Context, actor policy.Subject, in companyuc.Input) (company.Company, error)
	Update(ctx context.Context, actor policy.Subject, id uuid.UUID, in companyuc.Input) (company.Company, error)
	Get(ctx context.Context, id uuid.UUID) (company.Company, error)
	List(ctx context.Context, all bool) ([]company.Company, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, raw string) (company.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CompanyHandler struct {
	uc CompanyUsecase
}

func NewCompanyHandler(uc CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func (h *CompanyHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

func (h *CompanyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
}

func (h *CompanyHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), false)
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return ok(c, dto.MapSlice(items, dto.NewCompanyResponse))
}

func (h *CompanyHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	co, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return ok(c, dto.NewCompanyResponse(co))
}

func (h *CompanyHandler) Create(c fiber.Ctx) error {
	s, err := subject(c)
	if err != nil {
		return err
	}

	var req dto.CompanyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	co, err := h.uc.Create(c.Context(), s, companyInput(req))
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return created(c, dto.NewCompanyResponse(co))
}

func (h *CompanyHandler) Update(c fiber.Ctx) error {
	s, err := subject(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.CompanyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	co, err := h.uc.Update(c.Context(), s, id, companyInput(req))
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return ok(c, dto.NewCompanyResponse(co))
}

func companyInput(req dto.CompanyRequest) companyuc.Input {
	return companyuc.Input{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Location:    req.Location,
		Industry:    req.Industry,
		Email:       req.Email,
		Phone:       req.Phone,
	}
}

func mapCompanyUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	if denied := deniedError(err); denied != nil {
		return denied
	}

	switch {
	case errors.Is(err, companyuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, companyuc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, err)
	case errors.Is(err, companyuc.ErrNameTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Company name already registered", nil, err)
	default:
		return internalError(err)
	}
}
