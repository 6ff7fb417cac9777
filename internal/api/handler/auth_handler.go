package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/service-catalog/internal/api/middleware"
	"github.com/99minutos/service-catalog/internal/core/domain"
	"github.com/99minutos/service-catalog/internal/core/ports"
)

// CookieOptions controls the token cookie set on login.
type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieOptions
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, cookie CookieOptions, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, log: log}
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, msgInvalidPayload)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return fail(c, http.StatusConflict, "User already exists")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return fail(c, http.StatusBadRequest, "Name, email, and password are required")
		}
		h.log.Error().Err(err).Msg("register failed")
		return fail(c, http.StatusInternalServerError, "Server error while registering user")
	}

	return c.JSON(http.StatusCreated, authResponse{Success: true, User: user})
}

// Login authenticates a user, returns a token and sets it as a cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, msgInvalidPayload)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return fail(c, http.StatusUnauthorized, "Invalid email or password")
		}
		h.log.Error().Err(err).Msg("login failed")
		return fail(c, http.StatusInternalServerError, "Server error while logging in")
	}

	c.SetCookie(h.tokenCookie(token, h.cookie.MaxAge))
	return c.JSON(http.StatusOK, authResponse{Success: true, Token: token, User: user})
}

// Logout expires the token cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.tokenCookie("", -1))
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Logged out successfully"})
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Not authorized")
	}
	return c.JSON(http.StatusOK, authResponse{Success: true, User: user})
}

// tokenCookie builds the token cookie; a negative maxAge deletes it.
func (h *AuthHandler) tokenCookie(value string, maxAge time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	} else if maxAge > 0 {
		cookie.MaxAge = int(maxAge.Seconds())
	}
	return cookie
}
