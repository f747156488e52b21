package usecase

import (
	"errors"

	"jobboard/internal/domain/policy"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// DeniedError carries the policy reason for a refused operation.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string {
	return e.Reason
}

// Denied converts a policy decision into an error, nil when allowed.
func Denied(d policy.Decision) error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{Reason: d.Reason}
}
