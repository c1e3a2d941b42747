package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/probooking/probooking-api/internal/api/handler"
	"github.com/probooking/probooking-api/internal/api/middleware"
	"github.com/probooking/probooking-api/internal/core/domain"
	"github.com/probooking/probooking-api/internal/core/ports"
)

// Dependencies carries everything the router wires into handlers. Mongo,
// Redis, and AuditRepo are optional; nil disables the features they back.
type Dependencies struct {
	AuthService ports.AuthService
	Codec       ports.SessionCodec
	AuditRepo   ports.AuditRepository
	Mongo       *mongo.Database
	Redis       *redis.Client
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("probooking"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	profileHandler := handler.NewProfileHandler()
	auditHandler := handler.NewAuditHandler(deps.AuditRepo)
	sessionMiddleware := middleware.Session(deps.Codec)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)
	e.DELETE("/auth/error", authHandler.ClearError)

	// --- Authenticated routes ---
	e.GET("/me", profileHandler.Me, sessionMiddleware)
	e.GET("/dashboard", profileHandler.Dashboard, sessionMiddleware,
		middleware.RBAC(domain.RoleProfessional, domain.RoleClient, domain.RoleSuperAdmin))

	// --- Super-admin routes ---
	admin := e.Group("/admin", sessionMiddleware, middleware.RBAC(domain.RoleSuperAdmin))
	admin.GET("/audit", auditHandler.Recent)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
