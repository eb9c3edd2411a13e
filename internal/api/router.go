package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yogastudio/booking-system/internal/api/handler"
	"github.com/yogastudio/booking-system/internal/api/middleware"
	"github.com/yogastudio/booking-system/internal/core/domain"
	"github.com/yogastudio/booking-system/internal/core/ports"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Auth       ports.AuthService
	Sessions   ports.SessionService
	Roster     ports.RosterService
	Users      ports.UserService
	Teachers   ports.TeacherService
	Tokens     ports.TokenCodec
	Principals ports.PrincipalLoader

	// Optional backends probed by /health/ready.
	Mongo *mongo.Database
	Redis *redis.Client

	// Registry receives the HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "booking",
		Registerer: registerer,
	}))
	e.Use(middleware.Identify(deps.Tokens, deps.Principals, deps.Logger))

	authHandler := handler.NewAuthHandler(deps.Auth)
	sessionHandler := handler.NewSessionHandler(deps.Sessions, deps.Roster)
	teacherHandler := handler.NewTeacherHandler(deps.Teachers)
	userHandler := handler.NewUserHandler(deps.Users)

	requireAuth := middleware.RequireAuth()
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)

	// --- Sessions ---
	sessions := api.Group("/session", requireAuth)
	sessions.GET("", sessionHandler.List)
	sessions.GET("/:id", sessionHandler.Get)
	sessions.POST("", sessionHandler.Create, adminOnly)
	sessions.PUT("/:id", sessionHandler.Update, adminOnly)
	sessions.DELETE("/:id", sessionHandler.Delete, adminOnly)
	sessions.POST("/:id/participate/:userId", sessionHandler.Participate)
	sessions.DELETE("/:id/participate/:userId", sessionHandler.NoLongerParticipate)

	// --- Teachers ---
	teachers := api.Group("/teacher", requireAuth)
	teachers.GET("", teacherHandler.List)
	teachers.GET("/:id", teacherHandler.Get)

	// --- Users ---
	users := api.Group("/user", requireAuth)
	users.GET("/:id", userHandler.Get)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness
	e.GET("/health/ready", readinessHandler.Readiness) // readiness

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
