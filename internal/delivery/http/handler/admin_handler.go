package handler

import (
	"context"
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/settings"
	"jobboard/internal/usecase"
	settingsuc "jobboard/internal/usecase/settings"
	useruc "jobboard/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type SettingsUsecase interface {
	Get() settings.Settings
	Update(ctx context.Context, next settings.Settings) (settings.Settings, error)
	Reset(ctx context.Context) (settings.Settings, error)
}

// AdminHandler serves the /admin group. Access is enforced by the route group,
// not here.
type AdminHandler struct {
	users        UserUsecase
	jobs         JobUsecase
	companies    CompanyUsecase
	applications ApplicationUsecase
	analytics    usecase.AnalyticsUsecase
	settings     SettingsUsecase
}

func NewAdminHandler(
	users UserUsecase,
	jobs JobUsecase,
	companies CompanyUsecase,
	applications ApplicationUsecase,
	analytics usecase.AnalyticsUsecase,
	settings SettingsUsecase,
) *AdminHandler {
	return &AdminHandler{
		users:        users,
		jobs:         jobs,
		companies:    companies,
		applications: applications,
		analytics:    analytics,
		settings:     settings,
	}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/stats", h.Stats)
	r.Get("/analytics", h.Analytics)

	r.Get("/users", h.ListUsers)
	r.Post("/users", h.CreateUser)
	r.Get("/users/:id", h.GetUser)
	r.Put("/users/:id", h.UpdateUser)
	r.Delete("/users/:id", h.DeleteUser)

	r.Get("/jobs", h.ListJobs)
	r.Patch("/jobs/:id/status", h.UpdateJobStatus)
	r.Delete("/jobs/:id", h.DeleteJob)

	r.Get("/companies", h.ListCompanies)
	r.Patch("/companies/:id/status", h.UpdateCompanyStatus)
	r.Delete("/companies/:id", h.DeleteCompany)

	r.Get("/applications", h.ListApplications)
	r.Patch("/applications/:id/status", h.UpdateApplicationStatus)
	r.Delete("/applications/:id", h.DeleteApplication)

	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)
	r.Post("/settings/reset", h.ResetSettings)
}

func (h *AdminHandler) Stats(c fiber.Ctx) error {
	counts, err := h.users.RoleStats(c.Context())
	if err != nil {
		return mapUserUsecaseError(err)
	}

	out := make(map[string]int, len(counts))
	total := 0
	for role, n := range counts {
		out[string(role)] = n
		total += n
	}
	return ok(c, map[string]any{"total": total, "by_role": out})
}

func (h *AdminHandler) Analytics(c fiber.Ctx) error {
	window, err := queryInt(c, "window", 0)
	if err != nil {
		return err
	}
	year, err := queryInt(c, "year", 0)
	if err != nil {
		return err
	}

	report, err := h.analytics.Dashboard(c.Context(), usecase.DashboardQuery{WindowDays: window, Year: year})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid window or year", nil, err)
		}
		return internalError(err)
	}
	return ok(c, report)
}

func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	items, err := h.users.List(c.Context())
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return ok(c, dto.MapSlice(items, dto.NewUserResponse))
}

func (h *AdminHandler) GetUser(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	usr, err := h.users.Get(c.Context(), id)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return ok(c, dto.NewUserResponse(usr))
}

func (h *AdminHandler) CreateUser(c fiber.Ctx) error {
	var req dto.AdminCreateUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, err := h.users.Create(c.Context(), useruc.CreateInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Role:        req.Role,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return created(c, dto.NewUserResponse(usr))
}

func (h *AdminHandler) UpdateUser(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.AdminUpdateUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, err := h.users.Update(c.Context(), id, useruc.UpdateInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
		Status:      req.Status,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return ok(c, dto.NewUserResponse(usr))
}

func (h *AdminHandler) DeleteUser(c fiber.Ctx) error {
	s, err := subject(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.Context(), s.UserID, id); err != nil {
		return mapUserUsecaseError(err)
	}
	return ok(c, nil)
}

func (h *AdminHandler) ListJobs(c fiber.Ctx) error {
	items, err := h.jobs.ListAll(c.Context())
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return ok(c, dto.MapSlice(items, dto.NewJobResponse))
}

func (h *AdminHandler) UpdateJobStatus(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	j, err := h.jobs.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return ok(c, dto.NewJobResponse(j))
}

func (h *AdminHandler) DeleteJob(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.jobs.Delete(c.Context(), id); err != nil {
		return mapJobUsecaseError(err)
	}
	return ok(c, nil)
}

func (h *AdminHandler) ListCompanies(c fiber.Ctx) error {
	items, err := h.companies.List(c.Context(), true)
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return ok(c, dto.MapSlice(items, dto.NewCompanyResponse))
}

func (h *AdminHandler) UpdateCompanyStatus(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	co, err := h.companies.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return ok(c, dto.NewCompanyResponse(co))
}

func (h *AdminHandler) DeleteCompany(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.companies.Delete(c.Context(), id); err != nil {
		return mapCompanyUsecaseError(err)
	}
	return ok(c, nil)
}

func (h *AdminHandler) ListApplications(c fiber.Ctx) error {
	items, err := h.applications.ListAll(c.Context())
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return ok(c, dto.MapSlice(items, dto.NewApplicationResponse))
}

func (h *AdminHandler) UpdateApplicationStatus(c fiber.Ctx) error {
	s, err := subject(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.applications.UpdateStatus(c.Context(), s, id, req.Status)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return ok(c, dto.NewApplicationResponse(a))
}

func (h *AdminHandler) DeleteApplication(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.applications.Delete(c.Context(), id); err != nil {
		return mapApplicationUsecaseError(err)
	}
	return ok(c, nil)
}

func (h *AdminHandler) GetSettings(c fiber.Ctx) error {
	return ok(c, h.settings.Get())
}

// UpdateSettings decodes the body over the current settings, so omitted fields
// keep their value.
func (h *AdminHandler) UpdateSettings(c fiber.Ctx) error {
	next := h.settings.Get()
	if err := c.Bind().Body(&next); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	saved, err := h.settings.Update(c.Context(), next)
	if err != nil {
		return mapSettingsUsecaseError(err)
	}
	return ok(c, saved)
}

func (h *AdminHandler) ResetSettings(c fiber.Ctx) error {
	saved, err := h.settings.Reset(c.Context())
	if err != nil {
		return mapSettingsUsecaseError(err)
	}
	return ok(c, saved)
}

func mapSettingsUsecaseError(err error) error {
	if errors.Is(err, settingsuc.ErrInvalidInput) {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid settings", nil, err)
	}
	return internalError(err)
}
