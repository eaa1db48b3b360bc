package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"senti/internal/errors"
	"senti/internal/model"
	"senti/internal/service"
)

// SessionHandler handles sign-in, registration and sign-out.
type SessionHandler struct {
	session service.SessionService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(session service.SessionService) *SessionHandler {
	return &SessionHandler{session: session}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required"`
	Name     string     `json:"name" validate:"required"`
	Role     model.Role `json:"role" validate:"required,oneof=entrepreneur mentor investor"`
}

// SessionResponse represents the current session.
type SessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	User          *model.Identity `json:"user,omitempty"`
}

// Current godoc
// @Summary Current session
// @Tags session
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /api/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	user := h.session.Current()
	return c.JSON(http.StatusOK, SessionResponse{
		Authenticated: user != nil,
		User:          user,
	})
}

// Login godoc
// @Summary Sign in
// @Tags session
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.session.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, SessionResponse{Authenticated: true, User: user})
}

// Register godoc
// @Summary Create an account and sign in
// @Tags session
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/session/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.session.Register(c.Request().Context(), req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, SessionResponse{Authenticated: true, User: user})
}

// Logout godoc
// @Summary Sign out
// @Description Always succeeds when the slot can be cleared, signed in or not.
// @Tags session
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.session.Logout(c.Request().Context()); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, SessionResponse{Authenticated: false})
}

func httpError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
