package application

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending      Status = "pending"
	StatusAccepted     Status = "accepted"
	StatusRejected     Status = "rejected"
	StatusWithdrawn    Status = "withdrawn"
	StatusInterviewing Status = "interviewing"
)

var Statuses = []Status{StatusPending, StatusAccepted, StatusRejected, StatusWithdrawn, StatusInterviewing}

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Statuses {
		if v == st {
			return st, true
		}
	}
	return "", false
}

// JobRef is the resolved job an application points to.
type JobRef struct {
	ID          uuid.UUID
	Title       string
	CompanyName string
	CreatedBy   uuid.UUID
}

// UserRef is the resolved applicant.
type UserRef struct {
	ID       uuid.UUID
	FullName string
	Email    string
}

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	Status      Status
	Job         *JobRef
	Applicant   *UserRef
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JobTitle returns the resolved job title, or "" when the job is unresolved.
func (a Application) JobTitle() string {
	if a.Job == nil {
		return ""
	}
	return strings.TrimSpace(a.Job.Title)
}
