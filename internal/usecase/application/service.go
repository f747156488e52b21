package application

import (
	"context"
	"errors"
	"log"
	"time"

	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/policy"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("application not found")
	ErrJobNotFound    = errors.New("job not found")
	ErrJobNotOpen     = errors.New("job is not accepting applications")
	ErrAlreadyApplied = errors.New("already applied to this job")
	ErrLimitReached   = errors.New("job has reached its application limit")
	ErrInternal       = errors.New("internal error")
)

type jobReader interface {
	GetJobByID(ctx context.Context, id uuid.UUID) (job.Job, error)
}

type Service struct {
	applications application.Repository
	jobs         jobReader
	policy       *policy.Authorizer
	settings     usecase.SettingsProvider
	changes      usecase.ChangePublisher
	logger       *log.Logger

	now func() time.Time
}

func NewService(applications application.Repository, jobs jobReader, authz *policy.Authorizer, settings usecase.SettingsProvider, changes usecase.ChangePublisher, logger *log.Logger) *Service {
	return &Service{applications: applications, jobs: jobs, policy: authz, settings: settings, changes: changes, logger: logger, now: time.Now}
}

func (s *Service) Apply(ctx context.Context, actor policy.Subject, jobID uuid.UUID) (application.Application, error) {
	if err := usecase.Denied(s.policy.Authorize(actor, policy.ActionApplicationCreate)); err != nil {
		return application.Application{}, err
	}

	j, err := s.loadJob(ctx, jobID)
	if err != nil {
		return application.Application{}, err
	}
	if j.Status != job.StatusActive {
		return application.Application{}, ErrJobNotOpen
	}

	exists, err := s.applications.ExistsForApplicant(ctx, jobID, actor.UserID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if exists {
		return application.Application{}, ErrAlreadyApplied
	}

	limit := 0
	if s.settings != nil {
		limit = s.settings.Get().MaxApplicationsPerJob
	}

	a := application.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		ApplicantID: actor.UserID,
		Status:      application.StatusPending,
	}
	if err := s.applications.CreateApplication(ctx, a, limit); err != nil {
		switch {
		case errors.Is(err, application.ErrAlreadyApplied):
			return application.Application{}, ErrAlreadyApplied
		case errors.Is(err, application.ErrLimitReached):
			return application.Application{}, ErrLimitReached
		}
		return application.Application{}, ErrInternal
	}

	created, err := s.Get(ctx, a.ID)
	if err != nil {
		return application.Application{}, err
	}

	if s.changes != nil {
		act := analytics.ApplicationActivity(created, s.now())
		s.changes.Publish(ctx, usecase.Change{Activity: &act, JobsChanged: true})
	}
	if s.logger != nil {
		s.logger.Printf("[Applications] applied application_id=%s job_id=%s applicant=%s", created.ID, jobID, actor.UserID)
	}
	return created, nil
}

func (s *Service) Mine(ctx context.Context, actor policy.Subject) ([]application.Application, error) {
	as, err := s.applications.ListByApplicant(ctx, actor.UserID)
	if err != nil {
		return nil, ErrInternal
	}
	return as, nil
}

// Applicants lists the applications of a job the caller may review.
func (s *Service) Applicants(ctx context.Context, actor policy.Subject, jobID uuid.UUID) ([]application.Application, error) {
	j, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := usecase.Denied(s.policy.CanReviewJob(actor, j)); err != nil {
		return nil, err
	}
	as, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return as, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := s.applications.GetApplicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	return a, nil
}

// UpdateStatus lets the job owner or an admin move an application along.
func (s *Service) UpdateStatus(ctx context.Context, actor policy.Subject, id uuid.UUID, raw string) (application.Application, error) {
	st, ok := application.ParseStatus(raw)
	if !ok {
		return application.Application{}, ErrInvalidInput
	}

	a, err := s.Get(ctx, id)
	if err != nil {
		return application.Application{}, err
	}

	var owner job.Job
	if a.Job != nil {
		owner = job.Job{ID: a.Job.ID, CreatedBy: a.Job.CreatedBy}
	}
	if err := usecase.Denied(s.policy.CanReviewJob(actor, owner)); err != nil {
		return application.Application{}, err
	}

	if err := s.applications.UpdateStatus(ctx, id, st); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	s.publish(ctx)
	return s.Get(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]application.Application, error) {
	as, err := s.applications.ListAllApplications(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return as, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.applications.DeleteApplication(ctx, id); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	s.publish(ctx)
	return nil
}

func (s *Service) loadJob(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := s.jobs.GetJobByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (s *Service) publish(ctx context.Context) {
	if s.changes != nil {
		s.changes.Publish(ctx, usecase.Change{JobsChanged: true})
	}
}
