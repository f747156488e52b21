package handler

import (
	"context"
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/policy"
	"jobboard/internal/usecase"
	jobuc "jobboard/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobUsecase interface {
	Post(ctx context.Context, actor policy.Subject, in jobuc.PostInput) (job.Job, error)
	Get(ctx context.Context, id uuid.UUID) (job.Job, error)
	ListAll(ctx context.Context) ([]job.Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, raw string) (job.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type JobsHandler struct {
	list usecase.JobListUsecase
	jobs JobUsecase
}

func NewJobsHandler(list usecase.JobListUsecase, jobs JobUsecase) *JobsHandler {
	return &JobsHandler{list: list, jobs: jobs}
}

// RegisterPublicRoutes mounts the read endpoints that need no session.
func (h *JobsHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.HandleListJobs)
	r.Get("/:id", h.HandleGetJob)
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.HandlePostJob)
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return err
	}

	items, err := h.list.ListJobs(c.Context(), usecase.JobListParams{
		Keyword:  c.Query("keyword"),
		Location: c.Query("location"),
		Status:   c.Query("status"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return mapJobListUsecaseError(err)
	}
	return ok(c, items)
}

func (h *JobsHandler) HandleGetJob(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	j, err := h.jobs.Get(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return ok(c, dto.NewJobResponse(j))
}

func (h *JobsHandler) HandlePostJob(c fiber.Ctx) error {
	s, err := subject(c)
	if err != nil {
		return err
	}

	var req dto.PostJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid company_id", nil, err)
	}

	j, err := h.jobs.Post(c.Context(), s, jobuc.PostInput{
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Salary:          req.Salary,
		Location:        req.Location,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		Positions:       req.Positions,
		CompanyID:       companyID,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return created(c, dto.NewJobResponse(j))
}

func mapJobListUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return internalError(err)
	}
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	if denied := deniedError(err); denied != nil {
		return denied
	}

	switch {
	case errors.Is(err, jobuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, jobuc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, jobuc.ErrCompanyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, err)
	case errors.Is(err, jobuc.ErrPostingDisabled):
		return middleware.NewAppError(fiber.StatusForbidden, "Job posting is currently disabled", nil, err)
	case errors.Is(err, jobuc.ErrCompanyNotActive):
		return middleware.NewAppError(fiber.StatusConflict, "Company is not active", nil, err)
	default:
		return internalError(err)
	}
}
