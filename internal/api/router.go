package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ezwallet/wallet-system/internal/api/handler"
	"github.com/ezwallet/wallet-system/internal/api/middleware"
	"github.com/ezwallet/wallet-system/internal/api/session"
	"github.com/ezwallet/wallet-system/internal/core/service"
	"github.com/ezwallet/wallet-system/internal/core/token"
	"github.com/ezwallet/wallet-system/internal/infrastructure/config"
	mongodb "github.com/ezwallet/wallet-system/internal/infrastructure/db/mongo"
	redisdb "github.com/ezwallet/wallet-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes
// registered.
func NewRouter(cfg *config.Config, codec *token.Codec, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("wallet"))

	// --- Dependencies ---
	cookies := session.Options{
		Domain:     cfg.Cookie.Domain,
		Path:       cfg.Cookie.Path,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	}

	userRepo := mongodb.NewUserRepository(db)
	groupRepo := redisdb.NewGroupCache(rdb, mongodb.NewGroupRepository(db), cfg.Redis.GroupTTL)

	sessions := service.NewSessionService(userRepo, codec, cfg.AccessTTL, cfg.RefreshTTL)
	verifier := service.NewVerifier(codec, cfg.AccessTTL)
	authorize := middleware.NewAuthorizer(verifier, groupRepo, cookies)

	authHandler := handler.NewAuthHandler(sessions, cookies)
	userHandler := handler.NewUserHandler(userRepo)
	groupHandler := handler.NewGroupHandler(groupRepo)

	// --- Auth routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/admin", authHandler.RegisterAdmin)
	e.POST("/api/login", authHandler.Login)
	e.GET("/api/logout", authHandler.Logout)

	// --- Protected routes, one per capability ---
	e.GET("/api/users", userHandler.List, authorize.Admin())
	e.GET("/api/users/:username", userHandler.Get, authorize.UserOrAdmin("username"))
	e.GET("/api/groups/:name", groupHandler.Get, authorize.Group("name"))

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
