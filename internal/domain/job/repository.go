package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

// ListFilter narrows a listing. A job matches Keywords when its title or
// description contains any of them.
type ListFilter struct {
	Keywords []string
	Location string
	Status   Status
	Limit    int
	Offset   int
}

type Repository interface {
	CreateJob(ctx context.Context, j Job) error
	GetJobByID(ctx context.Context, id uuid.UUID) (Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteJob(ctx context.Context, id uuid.UUID) error
	ListJobs(ctx context.Context, f ListFilter) ([]Job, error)
	// ListAllJobs returns every job with its company resolved, newest first.
	ListAllJobs(ctx context.Context) ([]Job, error)
}
