package handler

import (
	"context"
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"
	useruc "jobboard/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, in useruc.UpdateMeInput) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
	Get(ctx context.Context, id uuid.UUID) (user.User, error)
	Create(ctx context.Context, in useruc.CreateInput) (user.User, error)
	Update(ctx context.Context, id uuid.UUID, in useruc.UpdateInput) (user.User, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	RoleStats(ctx context.Context) (user.RoleCounts, error)
}

type UserHandler struct {
	uc UserUsecase
}

func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	s, err := subject(c)
	if err != nil {
		return err
	}

	usr, err := h.uc.GetMe(c.Context(), s.UserID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return ok(c, dto.NewUserResponse(usr))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	s, err := subject(c)
	if err != nil {
		return err
	}

	var req dto.UpdateMeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if req.FullName == nil && req.Email == nil && req.PhoneNumber == nil && req.Password == nil && req.Bio == nil && req.Skills == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, nil)
	}

	usr, err := h.uc.UpdateMe(c.Context(), s.UserID, useruc.UpdateMeInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Bio:         req.Bio,
		Skills:      req.Skills,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return ok(c, dto.NewUserResponse(usr))
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, useruc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, useruc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, useruc.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, useruc.ErrProfileUpdatesDisabled):
		return middleware.NewAppError(fiber.StatusForbidden, "Profile updates are disabled", nil, err)
	case errors.Is(err, useruc.ErrSelfDelete):
		return middleware.NewAppError(fiber.StatusBadRequest, "You cannot delete your own account", nil, err)
	default:
		return internalError(err)
	}
}
