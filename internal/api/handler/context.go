package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/codeforge/problemhub/internal/api/middleware"
	"github.com/codeforge/problemhub/internal/core/domain"
)

// currentUser returns the identity attached by the Auth middleware. A route
// wired without it fails with 401 instead of acting anonymously.
func currentUser(c echo.Context) (*domain.PublicUser, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return user, nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("Invalid " + name)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter; absent or malformed
// values yield 0 so the service applies its default.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}

// queryFloat parses an optional float query parameter.
func queryFloat(c echo.Context, name string) *float64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
