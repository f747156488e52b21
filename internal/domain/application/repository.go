package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("application not found")
	ErrAlreadyApplied = errors.New("already applied")
	ErrLimitReached   = errors.New("application limit reached")
)

type Repository interface {
	// CreateApplication inserts a unless the job already holds limit
	// applications. The count and insert are atomic; limit <= 0 means no cap.
	CreateApplication(ctx context.Context, a Application, limit int) error
	GetApplicationByID(ctx context.Context, id uuid.UUID) (Application, error)
	ExistsForApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteApplication(ctx context.Context, id uuid.UUID) error
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]Application, error)
	// ListAllApplications returns every application with job and applicant resolved, newest first.
	ListAllApplications(ctx context.Context) ([]Application, error)
}
