package company

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("company not found")
	ErrAlreadyExists = errors.New("company already exists")
)

type Repository interface {
	CreateCompany(ctx context.Context, c Company) error
	GetCompanyByID(ctx context.Context, id uuid.UUID) (Company, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	UpdateCompany(ctx context.Context, c Company) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteCompany(ctx context.Context, id uuid.UUID) error
	ListCompanies(ctx context.Context) ([]Company, error)
}
