package dto

import (
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	Bio         string    `json:"bio"`
	Skills      []string  `json:"skills"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserResponse{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		Status:      string(u.Status),
		Bio:         u.Bio,
		Skills:      skills,
		CreatedAt:   u.CreatedAt,
	}
}

type CompanyResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Website     string     `json:"website"`
	Location    string     `json:"location"`
	Industry    string     `json:"industry"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Status      string     `json:"status"`
	OwnerID     *uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewCompanyResponse(c company.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Website:     c.Website,
		Location:    c.Location,
		Industry:    c.Industry,
		Email:       c.Email,
		Phone:       c.Phone,
		Status:      string(c.Status),
		OwnerID:     optionalID(c.OwnerID),
		CreatedAt:   c.CreatedAt,
	}
}

type CompanyRefResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type JobResponse struct {
	ID               uuid.UUID           `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Requirements     []string            `json:"requirements"`
	Salary           float64             `json:"salary"`
	Location         string              `json:"location"`
	JobType          string              `json:"job_type"`
	ExperienceLevel  string              `json:"experience_level"`
	Positions        int                 `json:"positions"`
	Status           string              `json:"status"`
	Company          *CompanyRefResponse `json:"company"`
	CreatedBy        *uuid.UUID          `json:"created_by"`
	ApplicationCount int                 `json:"application_count"`
	CreatedAt        time.Time           `json:"created_at"`
}

func NewJobResponse(j job.Job) JobResponse {
	reqs := j.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	res := JobResponse{
		ID:               j.ID,
		Title:            j.Title,
		Description:      j.Description,
		Requirements:     reqs,
		Salary:           j.Salary,
		Location:         j.Location,
		JobType:          j.JobType,
		ExperienceLevel:  j.ExperienceLevel,
		Positions:        j.Positions,
		Status:           string(j.Status),
		CreatedBy:        optionalID(j.CreatedBy),
		ApplicationCount: j.ApplicationCount,
		CreatedAt:        j.CreatedAt,
	}
	if j.Company != nil {
		res.Company = &CompanyRefResponse{ID: j.Company.ID, Name: j.Company.Name}
	}
	return res
}

type ApplicationJobResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	CompanyName string    `json:"company_name"`
}

type ApplicantResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
}

type ApplicationResponse struct {
	ID        uuid.UUID               `json:"id"`
	Status    string                  `json:"status"`
	Job       *ApplicationJobResponse `json:"job"`
	Applicant *ApplicantResponse      `json:"applicant"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	res := ApplicationResponse{
		ID:        a.ID,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Job != nil {
		res.Job = &ApplicationJobResponse{ID: a.Job.ID, Title: a.Job.Title, CompanyName: a.Job.CompanyName}
	}
	if a.Applicant != nil {
		res.Applicant = &ApplicantResponse{ID: a.Applicant.ID, FullName: a.Applicant.FullName, Email: a.Applicant.Email}
	}
	return res
}

// MapSlice converts a slice of entities with one of the constructors above.
func MapSlice[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

func optionalID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
