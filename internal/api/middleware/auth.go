package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/service-catalog/internal/api/metrics"
	"github.com/99minutos/service-catalog/internal/core/domain"
	"github.com/99minutos/service-catalog/internal/core/ports"
)

const (
	// TokenCookie is the cookie carrying the session token.
	TokenCookie = "token"

	contextKeyUser = "user"

	msgNoToken      = "Not authorized, no token"
	msgTokenFailed  = "Not authorized, token failed"
	msgUserNotFound = "Not authorized, user not found"
)

// Auth resolves the caller from a token and injects the user into context.
// The cookie takes precedence over the Authorization header.
func Auth(verifier ports.TokenVerifier, users ports.UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c.Request())
			if token == "" {
				return reject("no_token", msgNoToken)
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				return reject("token_invalid", msgTokenFailed)
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return reject("user_not_found", msgUserNotFound)
				}
				return fmt.Errorf("auth: load user: %w", err)
			}

			c.Set(contextKeyUser, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Auth.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(contextKeyUser).(*domain.User)
	return user, ok && user != nil
}

// extractToken reads the token cookie, falling back to an Authorization
// header starting with "Bearer". The token is the second space-separated
// element of the header.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer") {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func reject(reason, msg string) error {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}
