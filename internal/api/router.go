package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/simplecrm/crm-system/internal/api/handler"
	"github.com/simplecrm/crm-system/internal/api/middleware"
	"github.com/simplecrm/crm-system/internal/core/domain"
	"github.com/simplecrm/crm-system/internal/core/service"
	mongodb "github.com/simplecrm/crm-system/internal/infrastructure/db/mongo"
	redisdb "github.com/simplecrm/crm-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("crm"))

	// --- Dependencies ---
	requestRepo := mongodb.NewRequestRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	stamps := redisdb.NewCredentialStamps(rdb)

	authService := service.NewAuthService(userRepo, jwtSecret, tokenTTL)
	requestService := service.NewRequestService(requestRepo, log)
	profileService := service.NewProfileService(userRepo, stamps, log)

	authHandler := handler.NewAuthHandler(authService)
	requestHandler := handler.NewRequestHandler(requestService)
	profileHandler := handler.NewProfileHandler(profileService)

	authMiddleware := middleware.Auth(jwtSecret, stamps, log)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Request lifecycle ---
	requests := e.Group("/v1/requests", authMiddleware)
	requests.GET("", requestHandler.List, middleware.RBAC(domain.RoleAdmin))
	requests.POST("", requestHandler.Create)
	requests.GET("/:id", requestHandler.Get)
	requests.PUT("/:id", requestHandler.Update)
	requests.DELETE("/:id", requestHandler.Delete)

	// --- Profile ---
	profile := e.Group("/v1/profile", authMiddleware)
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Update)
	profile.POST("/password", profileHandler.ChangePassword)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
