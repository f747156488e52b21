package middleware

import (
	"errors"
	"log"

	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       any
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data any, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("[HTTP] panic recovered | method=%s path=%s panic=%v", c.Method(), c.Path(), r)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		if status >= 500 {
			m.logger.Printf("[HTTP] request failed | method=%s path=%s status=%d err=%v", c.Method(), c.Path(), status, err)
		}
		return response.Error(c, status, msg, data)
	}
}

func statusOf(err error) int {
	status, _, _ := normalizeError(err)
	return status
}

// normalizeError picks the status, message and data to render. Internal
// failures never leak their message; 503 passes through so clients can retry.
func normalizeError(err error) (int, string, any) {
	status, msg := fiber.StatusInternalServerError, ""
	var data any

	var appErr *AppError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		status, msg, data = appErr.StatusCode, appErr.Message, appErr.Data
	case errors.As(err, &fiberErr):
		status, msg = fiberErr.Code, fiberErr.Message
	}

	switch {
	case status == fiber.StatusServiceUnavailable:
		return status, response.MessageFor(status), nil
	case status <= 0 || status >= 500:
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	case msg == "":
		msg = response.MessageFor(status)
	}
	return status, msg, data
}
