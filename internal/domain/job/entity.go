package job

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
	StatusExpired  Status = "expired"
)

var Statuses = []Status{StatusActive, StatusInactive, StatusPending, StatusExpired}

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Statuses {
		if v == st {
			return st, true
		}
	}
	return "", false
}

// CompanyRef is the resolved owning company. Nil on a Job when the company row is gone.
type CompanyRef struct {
	ID   uuid.UUID
	Name string
}

type Job struct {
	ID               uuid.UUID
	Title            string
	Description      string
	Requirements     []string
	Salary           float64
	Location         string
	JobType          string
	ExperienceLevel  string
	Positions        int
	Status           Status
	CompanyID        uuid.UUID
	CreatedBy        uuid.UUID
	Company          *CompanyRef
	ApplicationCount int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CompanyName returns the resolved company name, or "" when unresolved.
func (j Job) CompanyName() string {
	if j.Company == nil {
		return ""
	}
	return strings.TrimSpace(j.Company.Name)
}
