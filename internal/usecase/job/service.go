package job

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/policy"
	"jobboard/internal/domain/settings"
	"jobboard/internal/domain/user"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("job not found")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrPostingDisabled  = errors.New("job posting is disabled")
	ErrCompanyNotActive = errors.New("company is not active")
	ErrInternal         = errors.New("internal error")
)

type PostInput struct {
	Title           string
	Description     string
	Requirements    []string
	Salary          float64
	Location        string
	JobType         string
	ExperienceLevel string
	Positions       int
	CompanyID       uuid.UUID
}

type companyReader interface {
	GetCompanyByID(ctx context.Context, id uuid.UUID) (company.Company, error)
}

type Service struct {
	jobs      job.Repository
	companies companyReader
	policy    *policy.Authorizer
	settings  usecase.SettingsProvider
	changes   usecase.ChangePublisher
	logger    *log.Logger

	now func() time.Time
}

func NewService(jobs job.Repository, companies companyReader, authz *policy.Authorizer, settings usecase.SettingsProvider, changes usecase.ChangePublisher, logger *log.Logger) *Service {
	return &Service{jobs: jobs, companies: companies, policy: authz, settings: settings, changes: changes, logger: logger, now: time.Now}
}

// Post creates a job for a company the caller manages. Non-admin postings
// start pending while job approval is required.
func (s *Service) Post(ctx context.Context, actor policy.Subject, in PostInput) (job.Job, error) {
	if err := usecase.Denied(s.policy.Authorize(actor, policy.ActionJobPost)); err != nil {
		return job.Job{}, err
	}
	cfg := s.current()
	isAdmin := actor.Role == user.RoleAdmin
	if !isAdmin && !cfg.AllowJobPosting {
		return job.Job{}, ErrPostingDisabled
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.CompanyID == uuid.Nil || in.Salary < 0 || in.Positions < 0 {
		return job.Job{}, ErrInvalidInput
	}
	if in.Positions == 0 {
		in.Positions = 1
	}

	c, err := s.companies.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return job.Job{}, ErrCompanyNotFound
		}
		return job.Job{}, ErrInternal
	}
	if err := usecase.Denied(s.policy.CanManageCompany(actor, c)); err != nil {
		return job.Job{}, err
	}
	if !isAdmin && c.Status != company.StatusActive {
		return job.Job{}, ErrCompanyNotActive
	}

	status := job.StatusActive
	if !isAdmin && cfg.RequireJobApproval {
		status = job.StatusPending
	}

	j := job.Job{
		ID:              uuid.New(),
		Title:           in.Title,
		Description:     strings.TrimSpace(in.Description),
		Requirements:    cleanList(in.Requirements),
		Salary:          in.Salary,
		Location:        strings.TrimSpace(in.Location),
		JobType:         strings.TrimSpace(in.JobType),
		ExperienceLevel: strings.TrimSpace(in.ExperienceLevel),
		Positions:       in.Positions,
		Status:          status,
		CompanyID:       c.ID,
		CreatedBy:       actor.UserID,
	}
	if err := s.jobs.CreateJob(ctx, j); err != nil {
		return job.Job{}, ErrInternal
	}

	created, err := s.Get(ctx, j.ID)
	if err != nil {
		return job.Job{}, err
	}

	if s.changes != nil {
		act := analytics.JobActivity(created, s.now())
		s.changes.Publish(ctx, usecase.Change{Activity: &act, JobsChanged: true})
	}
	if s.logger != nil {
		s.logger.Printf("[Jobs] posted job_id=%s company_id=%s status=%s", created.ID, c.ID, created.Status)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := s.jobs.GetJobByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (s *Service) ListAll(ctx context.Context) ([]job.Job, error) {
	js, err := s.jobs.ListAllJobs(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return js, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, raw string) (job.Job, error) {
	st, ok := job.ParseStatus(raw)
	if !ok {
		return job.Job{}, ErrInvalidInput
	}
	if err := s.jobs.UpdateStatus(ctx, id, st); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}
	s.publish(ctx)
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.jobs.DeleteJob(ctx, id); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	s.publish(ctx)
	return nil
}

// ExpireOverdue marks active jobs older than the configured maximum duration
// as expired and returns how many were changed.
func (s *Service) ExpireOverdue(ctx context.Context) (int, error) {
	days := s.current().MaxJobDurationDays
	if days <= 0 {
		return 0, nil
	}
	js, err := s.jobs.ListAllJobs(ctx)
	if err != nil {
		return 0, ErrInternal
	}

	cutoff := s.now().AddDate(0, 0, -days)
	n := 0
	for _, j := range js {
		if j.Status != job.StatusActive || !j.CreatedAt.Before(cutoff) {
			continue
		}
		if err := s.jobs.UpdateStatus(ctx, j.ID, job.StatusExpired); err != nil {
			if s.logger != nil {
				s.logger.Printf("[Jobs] expire failed job_id=%s err=%v", j.ID, err)
			}
			continue
		}
		n++
	}
	if n > 0 {
		s.publish(ctx)
		if s.logger != nil {
			s.logger.Printf("[Jobs] expired %d job(s) older than %d days", n, days)
		}
	}
	return n, nil
}

func (s *Service) publish(ctx context.Context) {
	if s.changes != nil {
		s.changes.Publish(ctx, usecase.Change{JobsChanged: true})
	}
}

func (s *Service) current() settings.Settings {
	if s.settings == nil {
		return settings.Defaults()
	}
	return s.settings.Get()
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
