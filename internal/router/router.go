package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"senti/docs"
	"senti/internal/config"
	"senti/internal/handler"
	"senti/internal/logging"
	"senti/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger *zap.Logger,
	session service.SessionState,
	sessionHandler *handler.SessionHandler,
	pageHandler *handler.PageHandler,
	listingHandler *handler.ListingHandler,
) {
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(Gate(session))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public pages
	e.GET(service.RouteHome, pageHandler.Home)
	e.GET(service.RouteLogin, pageHandler.LoginForm)
	e.GET(service.RouteRegister, pageHandler.RegisterForm)

	api := e.Group("/api")
	api.GET("/session", sessionHandler.Current)
	api.POST("/session/login", sessionHandler.Login)
	api.POST("/session/register", sessionHandler.Register)
	api.POST("/session/logout", sessionHandler.Logout)

	// Protected pages, guarded by Gate
	e.GET(service.RouteDashboard, pageHandler.Dashboard)
	e.GET(service.RouteProfile, pageHandler.Profile)
	e.GET(service.RouteSettings, pageHandler.Settings)
	e.GET(service.RouteFunding, listingHandler.Funding)
	e.GET(service.RouteMentorship, listingHandler.Mentorship)
	e.GET(service.RouteResources, listingHandler.Resources)
	e.GET(service.RouteEvents, listingHandler.Events)

	e.RouteNotFound("/*", pageHandler.NotFound)
}

// Gate redirects to the login page when a protected page is requested
// without a signed-in session. It runs before the page handler.
func Gate(session service.SessionState) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := service.CanAccess(c.Request().URL.Path, session)
			if !decision.Allowed {
				return c.Redirect(http.StatusFound, decision.RedirectTo)
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
