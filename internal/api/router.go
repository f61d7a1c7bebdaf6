package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/grupp3/accounts-api/internal/api/handler"
	"github.com/grupp3/accounts-api/internal/api/middleware"
	"github.com/grupp3/accounts-api/internal/core/domain"
	"github.com/grupp3/accounts-api/internal/core/service"
	"github.com/grupp3/accounts-api/internal/infrastructure/config"
	mongodb "github.com/grupp3/accounts-api/internal/infrastructure/db/mongo"
	redisdb "github.com/grupp3/accounts-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// It fails when the token issuer cannot be constructed, which keeps a missing
// signing secret a startup error rather than a runtime one.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	issuer, err := service.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	repo := mongodb.NewAccountRepository(db)
	hasher := service.NewBcryptHasher()
	throttle := redisdb.NewLoginThrottle(rdb)

	authService := service.NewAuthService(repo, hasher, issuer, throttle, log)
	accountService := service.NewAccountService(repo, hasher, log)

	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)

	// --- Open routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/accounts/register", accountHandler.Register)

	// --- Admin routes ---
	admin := e.Group("/accounts", middleware.Auth(issuer), middleware.RBAC(domain.RoleAdmin))
	admin.POST("/create-employee", accountHandler.CreateEmployee)
	admin.GET("", accountHandler.List)
	admin.GET("/:id", accountHandler.GetByID)
	admin.PUT("/:id", accountHandler.Update)
	admin.DELETE("/:id", accountHandler.Delete)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e, nil
}
