package routes

import (
	"jobboard/internal/delivery/http/handler"
	v1 "jobboard/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	v1     v1.Handlers
	mw     v1.Middlewares
}

func NewRegistry(health *handler.HealthHandler, h v1.Handlers, mw v1.Middlewares) *Registry {
	return &Registry{health: health, v1: h, mw: mw}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health == nil {
		return
	}
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1, r.mw)
}
