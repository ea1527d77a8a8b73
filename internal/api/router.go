package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Shivon404/financy-backend/docs"
	"github.com/Shivon404/financy-backend/internal/api/handler"
	"github.com/Shivon404/financy-backend/internal/api/middleware"
	"github.com/Shivon404/financy-backend/internal/core/domain"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

// Deps collects what the router needs. Registerer and Gatherer default to the
// global Prometheus registry when nil.
type Deps struct {
	Auth       ports.AuthService
	Accounts   ports.AccountService
	Categories ports.CategoryService
	Expenses   ports.ExpenseService
	Budgets    ports.BudgetService

	HealthChecks map[string]handler.HealthCheck
	JWTSecret    string
	Log          zerolog.Logger

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "financy",
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(d.HealthChecks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	accountHandler := handler.NewAccountHandler(d.Accounts)
	adminHandler := handler.NewAdminHandler(d.Accounts)
	categoryHandler := handler.NewCategoryHandler(d.Categories)
	expenseHandler := handler.NewExpenseHandler(d.Expenses)
	budgetHandler := handler.NewBudgetHandler(d.Budgets)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// --- Authenticated user routes ---
	user := api.Group("", middleware.Auth(d.JWTSecret))

	user.GET("/me", accountHandler.Me)
	user.PUT("/me/profile", accountHandler.UpdateProfile)
	user.PUT("/me/allowance", accountHandler.UpdateAllowance)
	user.GET("/me/statistics", accountHandler.Statistics)
	user.DELETE("/me", accountHandler.Delete)

	user.GET("/categories", categoryHandler.List)

	user.GET("/expenses", expenseHandler.List)
	user.POST("/expenses", expenseHandler.Create)
	user.PUT("/expenses/:id", expenseHandler.Update)
	user.DELETE("/expenses/:id", expenseHandler.Delete)

	user.GET("/budgets", budgetHandler.List)
	user.POST("/budgets", budgetHandler.Set)
	user.DELETE("/budgets/:id", budgetHandler.Delete)

	// --- Admin routes ---
	admin := api.Group("/admin", middleware.Auth(d.JWTSecret), middleware.RBAC(domain.RoleAdmin))

	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.PUT("/users/:id/status", adminHandler.SetStatus)
	admin.POST("/users/:id/status/toggle", adminHandler.ToggleStatus)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/users/:id/statistics", adminHandler.UserStatistics)
	admin.GET("/stats", adminHandler.SystemStats)

	admin.GET("/categories", categoryHandler.ListWithUsage)
	admin.GET("/categories/:id", categoryHandler.Get)
	admin.POST("/categories", categoryHandler.Create)
	admin.PUT("/categories/:id", categoryHandler.Update)
	admin.DELETE("/categories/:id", categoryHandler.Delete)

	return e
}
