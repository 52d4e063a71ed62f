package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eshopsolution/admin-api/internal/api/handler"
	"github.com/eshopsolution/admin-api/internal/api/middleware"
	"github.com/eshopsolution/admin-api/internal/apiclient"
	"github.com/eshopsolution/admin-api/internal/core/domain"
	"github.com/eshopsolution/admin-api/internal/core/service"
	mongostore "github.com/eshopsolution/admin-api/internal/infrastructure/db/mongo"
	redisstore "github.com/eshopsolution/admin-api/internal/infrastructure/db/redis"
)

// Options carries the dependencies and settings the router needs.
type Options struct {
	Mongo       *mongo.Database
	Redis       *redis.Client
	TokenKey    string
	TokenIssuer string
	BackendURL  string
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("eshop_admin"))

	// --- Dependencies ---
	store := mongostore.NewUserStore(opts.Mongo)
	sessions := redisstore.NewSessionStore(opts.Redis)
	issuer := service.NewTokenIssuer(opts.TokenKey, opts.TokenIssuer, 0)
	userService := service.NewUserService(store, issuer, sessions, opts.Logger)
	userHandler := handler.NewUserHandler(userService)

	backend := apiclient.New(opts.BackendURL, middleware.TokenFromContext)
	productHandler := handler.NewProductHandler(
		apiclient.NewProductClient(backend),
		apiclient.NewCategoryClient(backend),
	)

	authed := middleware.Auth(opts.TokenKey)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- User routes ---
	e.POST("/v1/users/authenticate", userHandler.Authenticate)
	e.POST("/v1/users", userHandler.Register)

	users := e.Group("/v1/users", authed)
	users.GET("/paging", userHandler.GetUsersPaging, adminOnly)
	users.GET("/:id", userHandler.GetByID)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, adminOnly)
	users.PUT("/:id/roles", userHandler.AssignRoles, adminOnly)

	// --- Catalog relay routes (admin only) ---
	products := e.Group("/v1/products", authed, adminOnly)
	products.GET("", productHandler.List)
	products.POST("", productHandler.Create)
	products.GET("/:id", productHandler.Get)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)

	e.GET("/v1/categories", productHandler.Categories, authed)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.Mongo, opts.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
