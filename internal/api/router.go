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

	_ "github.com/skillnet/skillnet/internal/api/docs"
	"github.com/skillnet/skillnet/internal/api/handler"
	"github.com/skillnet/skillnet/internal/api/metrics"
	"github.com/skillnet/skillnet/internal/api/middleware"
	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/emulator/ports"
	"github.com/skillnet/skillnet/internal/pkg/validation"
)

// Deps carries everything the router wires. Mongo and Redis are optional and
// only feed the readiness probe. A nil Registry gets a private one.
type Deps struct {
	Auth          ports.AuthService
	Catalog       ports.CatalogService
	Appointments  ports.AppointmentService
	Dashboard     ports.DashboardService
	JWTSecret     string
	Auth0StartURL string
	Mongo         *mongo.Database
	Redis         *redis.Client
	Registry      *prometheus.Registry
	Logger        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if err := metrics.Register(reg); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "skillnet_emulator",
		Registerer: reg,
	}))
	// The request logger runs the error handler so the metrics middleware
	// above sees the final status.
	e.Use(requestLogger(d.Logger))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Auth0StartURL)
	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	appointmentHandler := handler.NewAppointmentHandler(d.Appointments)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboard)
	authMiddleware := middleware.Auth(d.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/registerClient", authHandler.RegisterClient)
	e.POST("/auth/registerProvider", authHandler.RegisterProvider)
	e.GET("/auth/auth0/start/:kind", authHandler.OAuthStart)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Catalog routes ---
	e.GET("/categories", catalogHandler.Categories)
	e.GET("/serviceprovider", catalogHandler.Providers)
	e.GET("/serviceprovider/search", catalogHandler.Search)
	e.GET("/serviceprovider/:id", catalogHandler.Provider)
	e.PATCH("/serviceprovider/:id", catalogHandler.Update, authMiddleware,
		middleware.RBAC(domain.BackendRoleProvider, domain.BackendRoleAdmin))
	e.DELETE("/serviceprovider/:id", catalogHandler.Delete, authMiddleware,
		middleware.RBAC(domain.BackendRoleProvider, domain.BackendRoleAdmin))

	// --- Appointment routes ---
	e.GET("/appointments/booked-hours/:providerId", appointmentHandler.BookedHours)
	appointments := e.Group("/appointments", authMiddleware)
	appointments.GET("", appointmentHandler.List)
	appointments.POST("", appointmentHandler.Create, middleware.RBAC(domain.BackendRoleClient))
	appointments.GET("/:id", appointmentHandler.Get)
	appointments.PUT("/:id", appointmentHandler.UpdateStatus)

	// --- Admin routes ---
	admin := e.Group("/admin", authMiddleware, middleware.RBAC(domain.BackendRoleAdmin))
	admin.GET("/dashboard", dashboardHandler.Metrics)

	// --- Health probes, metrics and API docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
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
