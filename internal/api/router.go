package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/tuneup/accounts-api/docs"
	"github.com/tuneup/accounts-api/internal/api/handler"
	"github.com/tuneup/accounts-api/internal/api/middleware"
	"github.com/tuneup/accounts-api/internal/core/ports"
	"github.com/tuneup/accounts-api/internal/core/service"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	repo ports.UserRepository,
	issuer ports.TokenIssuer,
	notifier ports.Notifier,
	jwtSecret string,
	log zerolog.Logger,
) *echo.Echo {
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
	accounts := service.NewAccountService(repo, issuer, notifier, log)
	accountHandler := handler.NewAccountHandler(accounts)
	authMiddleware := middleware.Auth(jwtSecret)

	// --- Account routes ---
	e.POST("/user/signup", accountHandler.Signup)
	e.POST("/user/signin", accountHandler.Signin)
	e.GET("/user/me", accountHandler.Me, authMiddleware)
	e.GET("/user/:id", accountHandler.GetByID)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
