package routes

import (
	v1 "jobboard/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, h v1.Handlers, mw v1.Middlewares) {
	if r == nil {
		return
	}

	v1.Register(r, h, mw)
}
