package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/codeforge/problemhub/internal/api/metrics"
	"github.com/codeforge/problemhub/internal/core/domain"
	"github.com/codeforge/problemhub/pkg/logger"
)

// userContextKey is the echo.Context key holding the authenticated
// *domain.PublicUser.
const userContextKey = "user"

// Authenticator resolves a bearer token into the live identity it names.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.PublicUser, error)
}

type errorBody struct {
	Error string `json:"error"`
}

// Auth requires a valid bearer token whose identity still exists. The
// stored identity, not the token claims, is attached to the context.
func Auth(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request())
			if !ok {
				return reject(c, http.StatusUnauthorized, "missing_token", "Access token required")
			}

			user, err := authn.Authenticate(c.Request().Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrInvalidToken):
				return reject(c, http.StatusForbidden, "invalid_token", "Invalid or expired token")
			case errors.Is(err, domain.ErrUserNotFound):
				return reject(c, http.StatusForbidden, "user_not_found", "User not found")
			default:
				return err
			}

			SetUser(c, user)
			return next(c)
		}
	}
}

// OptionalAuth attaches the identity when a usable token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, ok := bearerToken(c.Request()); ok {
				if user, err := authn.Authenticate(c.Request().Context(), token); err == nil {
					SetUser(c, user)
				}
			}
			return next(c)
		}
	}
}

// SetUser attaches user to the request context.
func SetUser(c echo.Context, user *domain.PublicUser) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the identity attached by Auth or OptionalAuth.
func CurrentUser(c echo.Context) (*domain.PublicUser, bool) {
	user, ok := c.Get(userContextKey).(*domain.PublicUser)
	return user, ok && user != nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func reject(c echo.Context, status int, reason, msg string) error {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	log := logger.Get()
	log.Debug().
		Str("reason", reason).
		Str("method", c.Request().Method).
		Str("uri", c.Request().RequestURI).
		Msg("auth rejected")
	return c.JSON(status, errorBody{Error: msg})
}
