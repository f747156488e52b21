package v1

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func RegisterAdmin(r fiber.Router, adminHandler *handler.AdminHandler, activityWS *ws.Handler) {
	if r == nil {
		return
	}

	if adminHandler != nil {
		adminHandler.RegisterRoutes(r)
	}
	if activityWS != nil {
		r.Get("/ws", activityWS.HandleActivityWS)
	}
}
