package response

import "github.com/gofiber/fiber/v3"

// Envelope is the body of every JSON response the API writes.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const (
	MessageOK                  = "ok"
	MessageCreated             = "created"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "forbidden"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageUnprocessableEntity = "unprocessable entity"
	MessageInternalServerError = "internal server error"
	MessageServiceUnavailable  = "service unavailable"
	MessageError               = "error"
)

var messages = map[int]string{
	fiber.StatusOK:                  MessageOK,
	fiber.StatusCreated:             MessageCreated,
	fiber.StatusBadRequest:          MessageBadRequest,
	fiber.StatusUnauthorized:        MessageUnauthorized,
	fiber.StatusForbidden:           MessageForbidden,
	fiber.StatusNotFound:            MessageNotFound,
	fiber.StatusConflict:            MessageConflict,
	fiber.StatusUnprocessableEntity: MessageUnprocessableEntity,
	fiber.StatusServiceUnavailable:  MessageServiceUnavailable,
}

// MessageFor is the fallback message for a status with no explicit one.
func MessageFor(status int) string {
	if m, ok := messages[status]; ok {
		return m
	}
	if status >= 500 {
		return MessageInternalServerError
	}
	if status < 300 {
		return MessageOK
	}
	return MessageError
}

func Success(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data)
}

func Created(c fiber.Ctx, data any) error {
	return write(c, fiber.StatusCreated, MessageCreated, data)
}

func Error(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data)
}

func write(c fiber.Ctx, status int, message string, data any) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = MessageFor(status)
	}
	return c.Status(status).JSON(Envelope{Status: status, Message: message, Data: data})
}
