package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/service-catalog/docs"
	"github.com/99minutos/service-catalog/internal/api/handler"
	"github.com/99minutos/service-catalog/internal/api/middleware"
	"github.com/99minutos/service-catalog/internal/core/ports"
	"github.com/99minutos/service-catalog/internal/core/service"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Services ports.ServiceRepository
	Users    ports.UserRepository
	Tokens   *service.TokenService
	TokenTTL time.Duration
	Checks   map[string]handler.DependencyCheck
	Logger   zerolog.Logger

	// UserLookup resolves the caller for the auth gate; defaults to Users.
	UserLookup ports.UserLookup

	// Capability gates every catalog route; defaults to AllowAuthenticated.
	Capability middleware.Capability

	SecureCookie bool

	// Registry receives the HTTP metrics; nil uses the default Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(metricsConfig(deps.Registry)))

	// --- Dependencies ---
	lookup := deps.UserLookup
	if lookup == nil {
		lookup = deps.Users
	}
	capability := deps.Capability
	if capability == nil {
		capability = middleware.AllowAuthenticated
	}
	authGate := middleware.Auth(deps.Tokens, lookup)
	guard := middleware.RequireCapability(capability)

	catalogService := service.NewCatalogService(deps.Services, deps.Logger)
	serviceHandler := handler.NewServiceHandler(catalogService, deps.Logger)

	authService := service.NewAuthService(deps.Users, deps.Tokens)
	authHandler := handler.NewAuthHandler(authService, handler.CookieOptions{
		Secure: deps.SecureCookie,
		MaxAge: deps.TokenTTL,
	}, deps.Logger)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me, authGate)

	// --- Catalog routes (auth required) ---
	services := e.Group("/services", authGate, guard)
	services.GET("", serviceHandler.List)
	services.GET("/:id", serviceHandler.Get)
	services.POST("", serviceHandler.Create)
	services.PUT("/:id", serviceHandler.Update)
	services.DELETE("/:id", serviceHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness
	e.GET("/health/ready", readinessHandler.Readiness) // readiness

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer(deps.Registry)}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func metricsConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{
		Subsystem: "catalog",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func gatherer(reg *prometheus.Registry) prometheus.Gatherer {
	if reg != nil {
		return reg
	}
	return prometheus.DefaultGatherer
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
