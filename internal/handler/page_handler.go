package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"senti/internal/errors"
	"senti/internal/model"
	"senti/internal/service"
)

// PageHandler serves the non-listing pages.
type PageHandler struct {
	pages          service.PageService
	session        service.SessionService
	sessionBackend string
}

// NewPageHandler creates a new page handler. sessionBackend is shown on the
// settings page.
func NewPageHandler(pages service.PageService, session service.SessionService, sessionBackend string) *PageHandler {
	return &PageHandler{
		pages:          pages,
		session:        session,
		sessionBackend: sessionBackend,
	}
}

// Feature is one card of the home page.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// HomePage is the public landing page.
type HomePage struct {
	Headline      string    `json:"headline"`
	Tagline       string    `json:"tagline"`
	Features      []Feature `json:"features"`
	Authenticated bool      `json:"authenticated"`
}

// FormField describes one input of a form page.
type FormField struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// FormPage describes the login and registration pages.
type FormPage struct {
	Title  string      `json:"title"`
	Action string      `json:"action"`
	Fields []FormField `json:"fields"`
}

// SettingsPage shows the signed-in identity and where the session lives.
type SettingsPage struct {
	User           *model.Identity `json:"user"`
	SessionBackend string          `json:"sessionBackend"`
}

// Home godoc
// @Summary Landing page
// @Tags pages
// @Produce json
// @Success 200 {object} HomePage
// @Router / [get]
func (h *PageHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, HomePage{
		Headline: "Empowering Social Entrepreneurs in Mombasa",
		Tagline:  "Senti connects social entrepreneurs with the funding, mentorship, and market networks they need to create sustainable impact in Mombasa County.",
		Features: []Feature{
			{Title: "Connect", Description: "Find mentors and partners that align with your mission and vision."},
			{Title: "Fund", Description: "Access grants, investments, and other funding opportunities."},
			{Title: "Grow", Description: "Expand your business through strategic partnerships and market access."},
			{Title: "Measure", Description: "Track your impact and show investors the change you're making."},
		},
		Authenticated: h.session.IsAuthenticated(),
	})
}

// LoginForm godoc
// @Summary Login form
// @Tags pages
// @Produce json
// @Success 200 {object} FormPage
// @Router /login [get]
func (h *PageHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, FormPage{
		Title:  "Sign in to your account",
		Action: "/api/session/login",
		Fields: []FormField{
			{Name: "email", Label: "Email address", Type: "email", Required: true},
			{Name: "password", Label: "Password", Type: "password", Required: true},
		},
	})
}

// RegisterForm godoc
// @Summary Registration form
// @Tags pages
// @Produce json
// @Success 200 {object} FormPage
// @Router /register [get]
func (h *PageHandler) RegisterForm(c echo.Context) error {
	roles := make([]string, len(model.Roles))
	for i, r := range model.Roles {
		roles[i] = string(r)
	}
	return c.JSON(http.StatusOK, FormPage{
		Title:  "Create your account",
		Action: "/api/session/register",
		Fields: []FormField{
			{Name: "name", Label: "Full name", Type: "text", Required: true},
			{Name: "email", Label: "Email address", Type: "email", Required: true},
			{Name: "password", Label: "Password", Type: "password", Required: true},
			{Name: "role", Label: "I am a", Type: "select", Required: true, Options: roles},
		},
	})
}

// Dashboard godoc
// @Summary Dashboard
// @Tags pages
// @Produce json
// @Success 200 {object} service.DashboardView
// @Failure 302 "Not signed in"
// @Failure 500 {object} errors.ErrorResponse
// @Router /dashboard [get]
func (h *PageHandler) Dashboard(c echo.Context) error {
	user, err := h.currentUser()
	if err != nil {
		return err
	}
	view, err := h.pages.Dashboard(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// Profile godoc
// @Summary Profile
// @Tags pages
// @Produce json
// @Success 200 {object} service.ProfileView
// @Failure 302 "Not signed in"
// @Router /profile [get]
func (h *PageHandler) Profile(c echo.Context) error {
	user, err := h.currentUser()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.pages.Profile(user))
}

// Settings godoc
// @Summary Settings
// @Tags pages
// @Produce json
// @Success 200 {object} SettingsPage
// @Failure 302 "Not signed in"
// @Router /settings [get]
func (h *PageHandler) Settings(c echo.Context) error {
	user, err := h.currentUser()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, SettingsPage{User: user, SessionBackend: h.sessionBackend})
}

// NotFound renders the not-found page for any unrouted path.
func (h *PageHandler) NotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, errors.ErrorResponse{
		Error: "The page you are looking for doesn't exist or has been moved.",
		Code:  "NOT_FOUND",
	})
}

// currentUser covers a logout racing the gate: the gate let the request in,
// but the session may have been cleared since.
func (h *PageHandler) currentUser() (*model.Identity, error) {
	user := h.session.Current()
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "not signed in",
			Code:  "UNAUTHENTICATED",
		})
	}
	return user, nil
}
