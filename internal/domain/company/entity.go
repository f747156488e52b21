package company

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusPending   Status = "pending"
	StatusSuspended Status = "suspended"
)

var Statuses = []Status{StatusActive, StatusInactive, StatusPending, StatusSuspended}

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Statuses {
		if v == st {
			return st, true
		}
	}
	return "", false
}

type Company struct {
	ID          uuid.UUID
	Name        string
	Description string
	Website     string
	Location    string
	Industry    string
	Email       string
	Phone       string
	Status      Status
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
