package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/okunev/fishlog/internal/core/port"
	"github.com/okunev/fishlog/internal/infra/config"
	"github.com/okunev/fishlog/internal/infra/security"
	"github.com/okunev/fishlog/internal/transport/http/handlers"
	"github.com/okunev/fishlog/internal/transport/http/middleware"
	"github.com/okunev/fishlog/internal/usecase"
)

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	Gateway     port.AuthGateway
	Tokens      *security.TokenManager
	Registry    *usecase.Registry
	RateLimiter *middleware.RateLimiter
	Metrics     *middleware.HTTPMetrics
	Database    DatabaseChecker
	Cache       CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(deps.Metrics.Handler())

	healthOptions := make([]handlers.HealthOption, 0, 2)

	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}

	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}

	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		authMiddleware := middleware.RequireAuth(deps.Tokens)

		authHandler := handlers.NewAuthHandler(deps.Gateway, deps.Tokens, deps.Registry, deps.Logger)
		authGroup := api.Group("/auth")
		authHandler.RegisterRoutes(authGroup, buildLoginMiddlewares(deps)...)
		authGroup.POST("/logout", authMiddleware, authHandler.Logout)

		catchHandler := handlers.NewCatchHandler(deps.Registry)
		catchGroup := api.Group("/catches")
		catchGroup.Use(authMiddleware)
		catchHandler.RegisterRoutes(catchGroup)

		spotHandler := handlers.NewSpotHandler(deps.Registry)
		spotGroup := api.Group("/spots")
		spotGroup.Use(authMiddleware)
		spotHandler.RegisterRoutes(spotGroup)

		settingsHandler := handlers.NewSettingsHandler(deps.Registry)
		settingsGroup := api.Group("/settings")
		settingsGroup.Use(authMiddleware)
		settingsHandler.RegisterRoutes(settingsGroup)

		api.GET("/export", authMiddleware, settingsHandler.Export)
	}

	return r
}

// buildLoginMiddlewares applies the login throttling rule per client IP.
// Account-level throttling lives in the auth gateway; this guards the
// endpoint itself.
func buildLoginMiddlewares(deps Dependencies) []gin.HandlerFunc {
	if deps.RateLimiter == nil || deps.Config == nil {
		return nil
	}

	limit := deps.Config.RateLimit.LoginMaxAttempts
	if limit <= 0 {
		return nil
	}

	window := deps.Config.RateLimit.WindowDuration
	if window <= 0 {
		window = time.Minute
	}

	rule := middleware.RateLimitRule{
		Name:       "auth_login_ip",
		Limit:      limit,
		Window:     window,
		Identifier: middleware.ClientIPIdentifier(),
	}

	return []gin.HandlerFunc{deps.RateLimiter.RateLimit(rule)}
}
