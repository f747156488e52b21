package middleware

import (
	"jobboard/internal/domain/policy"

	"github.com/gofiber/fiber/v3"
)

type PolicyMiddleware struct {
	authz *policy.Authorizer
}

func NewPolicyMiddleware(authz *policy.Authorizer) *PolicyMiddleware {
	return &PolicyMiddleware{authz: authz}
}

// RequireAction must run after AuthMiddleware. A denied decision becomes a 403
// carrying the policy reason.
func (m *PolicyMiddleware) RequireAction(action policy.Action) fiber.Handler {
	return func(c fiber.Ctx) error {
		s, ok := SubjectFrom(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		d := m.authz.Authorize(s, action)
		if !d.Allowed {
			return NewAppError(fiber.StatusForbidden, d.Reason, nil, nil)
		}
		return c.Next()
	}
}

func (m *PolicyMiddleware) RequireAdmin() fiber.Handler {
	return m.RequireAction(policy.ActionAdminAccess)
}
