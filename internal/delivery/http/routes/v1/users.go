package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterUsers(r fiber.Router, userHandler *handler.UserHandler) {
	if r == nil {
		return
	}
	if userHandler == nil {
		return
	}

	userHandler.RegisterRoutes(r)
}

func RegisterApplications(r fiber.Router, applicationHandler *handler.ApplicationHandler) {
	if r == nil {
		return
	}
	if applicationHandler == nil {
		return
	}

	applicationHandler.RegisterRoutes(r)
}
