package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/service-catalog/internal/api/metrics"
	"github.com/99minutos/service-catalog/internal/core/domain"
)

const msgForbidden = "Forbidden, authentication required"

// Capability decides whether a resolved user may proceed.
type Capability func(user *domain.User) bool

// AllowAuthenticated admits every resolved user; all accounts are
// superadmins.
func AllowAuthenticated(user *domain.User) bool {
	return user != nil
}

// AllowRoles admits users holding one of roles.
func AllowRoles(roles ...string) Capability {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(user *domain.User) bool {
		if user == nil {
			return false
		}
		_, ok := allowed[user.Role]
		return ok
	}
}

// RequireCapability must run after Auth. Requests without a resolved user,
// or whose user fails check, are rejected with 403.
func RequireCapability(check Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok || !check(user) {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, msgForbidden)
			}
			return next(c)
		}
	}
}
