package v1

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Jobs        *handler.JobsHandler
	Company     *handler.CompanyHandler
	Application *handler.ApplicationHandler
	Admin       *handler.AdminHandler
	ActivityWS  *ws.Handler
}

type Middlewares struct {
	Auth   *middleware.AuthMiddleware
	Policy *middleware.PolicyMiddleware
}

func Register(r fiber.Router, h Handlers, mw Middlewares) {
	if r == nil {
		return
	}
	if mw.Auth == nil || mw.Policy == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	authn := mw.Auth.Middleware()

	RegisterJobs(r.Group("/jobs"), authn, h.Jobs)
	RegisterCompanies(r.Group("/companies"), authn, h.Company)
	RegisterUsers(r.Group("/users", authn), h.User)
	RegisterApplications(r.Group("/applications", authn), h.Application)
	RegisterAdmin(r.Group("/admin", authn, mw.Policy.RequireAdmin()), h.Admin, h.ActivityWS)
}
