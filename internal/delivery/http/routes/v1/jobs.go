package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterJobs keeps reads public and puts writes behind authn.
func RegisterJobs(r fiber.Router, authn fiber.Handler, jobsHandler *handler.JobsHandler) {
	if r == nil {
		return
	}
	if jobsHandler == nil {
		return
	}

	jobsHandler.RegisterPublicRoutes(r)
	jobsHandler.RegisterRoutes(r.Group("", authn))
}

func RegisterCompanies(r fiber.Router, authn fiber.Handler, companyHandler *handler.CompanyHandler) {
	if r == nil {
		return
	}
	if companyHandler == nil {
		return
	}

	companyHandler.RegisterPublicRoutes(r)
	companyHandler.RegisterRoutes(r.Group("", authn))
}
