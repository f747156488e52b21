package handler

import (
	"errors"
	"strconv"
	"strings"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/policy"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

var validate = validator.New()

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]fieldError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fieldError{Field: fe.Field(), Rule: fe.Tag()})
			}
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Validation failed", fields, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	return nil
}

func subject(c fiber.Ctx) (policy.Subject, error) {
	s, ok := middleware.SubjectFrom(c)
	if !ok {
		return policy.Subject{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return s, nil
}

func pathID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", nil, err)
	}
	return id, nil
}

func queryInt(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return v, nil
}

// deniedError returns a 403 for policy denials raised inside a usecase, nil
// for anything else.
func deniedError(err error) error {
	var denied *usecase.DeniedError
	if errors.As(err, &denied) {
		return middleware.NewAppError(fiber.StatusForbidden, denied.Reason, nil, err)
	}
	return nil
}

func internalError(err error) error {
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}

func ok(c fiber.Ctx, data any) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func created(c fiber.Ctx, data any) error {
	return response.Created(c, data)
}
