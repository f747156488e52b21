// Package policy decides what a caller may do. Handlers and middleware ask for a
// Decision instead of comparing role strings themselves.
package policy

import (
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

type Action string

const (
	ActionAdminAccess       Action = "admin.access"
	ActionJobPost           Action = "job.post"
	ActionCompanyManage     Action = "company.manage"
	ActionApplicationCreate Action = "application.create"
	ActionApplicationReview Action = "application.review"
)

type Subject struct {
	UserID uuid.UUID
	Role   user.Role
}

type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

type Authorizer struct {
	grants map[Action][]user.Role
}

func NewAuthorizer() *Authorizer {
	return &Authorizer{grants: map[Action][]user.Role{
		ActionAdminAccess:       {user.RoleAdmin},
		ActionJobPost:           {user.RoleRecruiter, user.RoleAdmin},
		ActionCompanyManage:     {user.RoleRecruiter, user.RoleAdmin},
		ActionApplicationCreate: {user.RoleSeeker},
		ActionApplicationReview: {user.RoleRecruiter, user.RoleAdmin},
	}}
}

func (a *Authorizer) Authorize(s Subject, action Action) Decision {
	if s.UserID == uuid.Nil {
		return Deny("authentication required")
	}
	roles, ok := a.grants[action]
	if !ok {
		return Deny("unknown action " + string(action))
	}
	for _, r := range roles {
		if r == s.Role {
			return Allow()
		}
	}
	if action == ActionAdminAccess {
		return Deny("admin privileges required")
	}
	return Deny("role " + roleLabel(s.Role) + " may not perform " + string(action))
}

// AuthorizeOwner allows admins and the owner of a resource.
func (a *Authorizer) AuthorizeOwner(s Subject, action Action, ownerID uuid.UUID) Decision {
	d := a.Authorize(s, action)
	if !d.Allowed {
		return d
	}
	if s.Role == user.RoleAdmin {
		return d
	}
	if ownerID == uuid.Nil || ownerID != s.UserID {
		return Deny("not the owner of this resource")
	}
	return d
}

func roleLabel(r user.Role) string {
	if r == "" {
		return "unknown"
	}
	return string(r)
}

func (a *Authorizer) CanManageCompany(s Subject, c company.Company) Decision {
	return a.AuthorizeOwner(s, ActionCompanyManage, c.OwnerID)
}

// CanReviewJob covers reading and deciding on the applications of a job.
func (a *Authorizer) CanReviewJob(s Subject, j job.Job) Decision {
	return a.AuthorizeOwner(s, ActionApplicationReview, j.CreatedBy)
}
