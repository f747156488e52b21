package company

import (
	"context"
	"errors"
	"log"
	"strings"

	"jobboard/internal/domain/company"
	"jobboard/internal/domain/policy"
	"jobboard/internal/domain/user"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("company not found")
	ErrNameTaken    = errors.New("company name already registered")
	ErrInternal     = errors.New("internal error")
)

type Input struct {
	Name        string
	Description string
	Website     string
	Location    string
	Industry    string
	Email       string
	Phone       string
}

type Service struct {
	companies company.Repository
	policy    *policy.Authorizer
	settings  usecase.SettingsProvider
	changes   usecase.ChangePublisher
	logger    *log.Logger
}

func NewService(companies company.Repository, authz *policy.Authorizer, settings usecase.SettingsProvider, changes usecase.ChangePublisher, logger *log.Logger) *Service {
	return &Service{companies: companies, policy: authz, settings: settings, changes: changes, logger: logger}
}

// Create registers a company owned by the caller. It starts pending when
// company approval is required, except when an admin creates it.
func (s *Service) Create(ctx context.Context, actor policy.Subject, in Input) (company.Company, error) {
	if err := usecase.Denied(s.policy.Authorize(actor, policy.ActionCompanyManage)); err != nil {
		return company.Company{}, err
	}

	in = trimInput(in)
	if in.Name == "" {
		return company.Company{}, ErrInvalidInput
	}

	exists, err := s.companies.ExistsByName(ctx, in.Name)
	if err != nil {
		return company.Company{}, ErrInternal
	}
	if exists {
		return company.Company{}, ErrNameTaken
	}

	status := company.StatusActive
	if actor.Role != user.RoleAdmin && (s.settings == nil || s.settings.Get().RequireCompanyApproval) {
		status = company.StatusPending
	}

	c := company.Company{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Website:     in.Website,
		Location:    in.Location,
		Industry:    in.Industry,
		Email:       in.Email,
		Phone:       in.Phone,
		Status:      status,
		OwnerID:     actor.UserID,
	}
	if err := s.companies.CreateCompany(ctx, c); err != nil {
		if errors.Is(err, company.ErrAlreadyExists) {
			return company.Company{}, ErrNameTaken
		}
		return company.Company{}, ErrInternal
	}

	s.publish(ctx)
	if s.logger != nil {
		s.logger.Printf("[Companies] created company_id=%s owner=%s status=%s", c.ID, c.OwnerID, c.Status)
	}
	return s.Get(ctx, c.ID)
}

func (s *Service) Update(ctx context.Context, actor policy.Subject, id uuid.UUID, in Input) (company.Company, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return company.Company{}, err
	}
	if err := usecase.Denied(s.policy.CanManageCompany(actor, c)); err != nil {
		return company.Company{}, err
	}

	in = trimInput(in)
	if in.Name == "" {
		return company.Company{}, ErrInvalidInput
	}
	if !strings.EqualFold(in.Name, c.Name) {
		exists, err := s.companies.ExistsByName(ctx, in.Name)
		if err != nil {
			return company.Company{}, ErrInternal
		}
		if exists {
			return company.Company{}, ErrNameTaken
		}
	}

	c.Name = in.Name
	c.Description = in.Description
	c.Website = in.Website
	c.Location = in.Location
	c.Industry = in.Industry
	c.Email = in.Email
	c.Phone = in.Phone

	if err := s.companies.UpdateCompany(ctx, c); err != nil {
		return company.Company{}, mapRepoError(err)
	}
	s.publish(ctx)
	return s.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (company.Company, error) {
	c, err := s.companies.GetCompanyByID(ctx, id)
	if err != nil {
		return company.Company{}, mapRepoError(err)
	}
	return c, nil
}

// List returns every company when all is set, otherwise only active ones.
func (s *Service) List(ctx context.Context, all bool) ([]company.Company, error) {
	cs, err := s.companies.ListCompanies(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	if all {
		return cs, nil
	}
	out := make([]company.Company, 0, len(cs))
	for _, c := range cs {
		if c.Status == company.StatusActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, raw string) (company.Company, error) {
	st, ok := company.ParseStatus(raw)
	if !ok {
		return company.Company{}, ErrInvalidInput
	}
	if err := s.companies.UpdateStatus(ctx, id, st); err != nil {
		return company.Company{}, mapRepoError(err)
	}
	s.publish(ctx)
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.companies.DeleteCompany(ctx, id); err != nil {
		return mapRepoError(err)
	}
	s.publish(ctx)
	return nil
}

// company names show up in job listings
func (s *Service) publish(ctx context.Context) {
	if s.changes != nil {
		s.changes.Publish(ctx, usecase.Change{JobsChanged: true})
	}
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, company.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, company.ErrAlreadyExists):
		return ErrNameTaken
	default:
		return ErrInternal
	}
}

func trimInput(in Input) Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Website = strings.TrimSpace(in.Website)
	in.Location = strings.TrimSpace(in.Location)
	in.Industry = strings.TrimSpace(in.Industry)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	return in
}
