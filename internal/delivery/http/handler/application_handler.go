package handler

import (
	"context"
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/policy"
	appuc "jobboard/internal/usecase/application"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationUsecase interface {
	Apply(ctx context.Context, actor policy.Subject, jobID uuid.UUID) (application.Application, error)
	Mine(ctx context.Context, actor policy.Subject) ([]application.Application, error)
	Applicants(ctx context.Context, actor policy.Subject, jobID uuid.UUID) ([]application.Application, error)
	UpdateStatus(ctx context.Context, actor policy.Subject, id uuid.UUID, raw string) (application.Application, error)
	ListAll(ctx context.Context) ([]application.Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ApplicationHandler struct {
	uc ApplicationUsecase
}

func NewApplicationHandler(uc ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.Mine)
	r.Post("/jobs/:id", h.Apply)
	r.Get("/jobs/:id/applicants", h.Applicants)
	r.Patch("/:id/status", h.UpdateStatus)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	s, err := subject(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	a, err := h.uc.Apply(c.Context(), s, jobID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return created(c, dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) Mine(c fiber.Ctx) error {
	s, err := subject(c)
	if err != nil {
		return err
	}

	items, err := h.uc.Mine(c.Context(), s)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return ok(c, dto.MapSlice(items, dto.NewApplicationResponse))
}

func (h *ApplicationHandler) Applicants(c fiber.Ctx) error {
	s, err := subject(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.Applicants(c.Context(), s, jobID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return ok(c, dto.MapSlice(items, dto.NewApplicationResponse))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	s, err := subject(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.StatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.uc.UpdateStatus(c.Context(), s, id, req.Status)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return ok(c, dto.NewApplicationResponse(a))
}

func mapApplicationUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	if denied := deniedError(err); denied != nil {
		return denied
	}

	switch {
	case errors.Is(err, appuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, appuc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, appuc.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, appuc.ErrJobNotOpen):
		return middleware.NewAppError(fiber.StatusConflict, "Job is not accepting applications", nil, err)
	case errors.Is(err, appuc.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied to this job", nil, err)
	case errors.Is(err, appuc.ErrLimitReached):
		return middleware.NewAppError(fiber.StatusConflict, "Job has reached its application limit", nil, err)
	default:
		return internalError(err)
	}
}
