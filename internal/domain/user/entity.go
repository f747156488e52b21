package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSeeker    Role = "seeker"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// Roles lists every role in display order.
var Roles = []Role{RoleSeeker, RoleRecruiter, RoleAdmin}

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleSeeker, RoleRecruiter, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type User struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Role         Role
	Status       Status
	Bio          string
	Skills       []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
