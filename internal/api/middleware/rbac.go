package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codeforge/problemhub/internal/api/metrics"
	"github.com/codeforge/problemhub/internal/core/domain"
	"github.com/codeforge/problemhub/pkg/logger"
)

type insufficientRoleBody struct {
	Error    string        `json:"error"`
	Required []domain.Role `json:"required"`
	Current  domain.Role   `json:"current"`
}

// RequireRole admits only identities whose role is in allowed. Roles are
// flat, so every route lists each role it accepts. It must run after Auth.
func RequireRole(allowed ...domain.Role) echo.MiddlewareFunc {
	set := domain.RoleSet(allowed)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return reject(c, http.StatusUnauthorized, "unauthenticated", "Authentication required")
			}
			if !set.Contains(user.Role) {
				metrics.AuthRejectionsTotal.WithLabelValues("insufficient_role").Inc()
				log := logger.Get()
				log.Debug().
					Int64("user_id", user.ID).
					Str("role", string(user.Role)).
					Str("path", c.Path()).
					Msg("insufficient role")
				return c.JSON(http.StatusForbidden, insufficientRoleBody{
					Error:    "Insufficient permissions",
					Required: set,
					Current:  user.Role,
				})
			}
			return next(c)
		}
	}
}
