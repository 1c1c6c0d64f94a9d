package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/expensetracker/internal/server/http/handlers"
	"github.com/polkiloo/expensetracker/internal/server/http/middleware"
)

// maxRequestBody caps inflated gzip request bodies.
const maxRequestBody = 1 << 20

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.TrackerFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(maxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	expenseHandler := handlers.NewExpenseHandler(facade)
	analyticsHandler := handlers.NewAnalyticsHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/health", healthHandler.Check)

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(facade, logger))

	expenses := protected.Group("/expenses")
	expenses.GET("", expenseHandler.List)
	expenses.POST("", expenseHandler.Create)
	expenses.GET("/filter", expenseHandler.Filter)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)
	expenses.GET("/summary-expense", analyticsHandler.Summary)
	expenses.GET("/category-summary", analyticsHandler.CategorySummary)
	expenses.GET("/budget-check", analyticsHandler.BudgetCheck)

	analytics := protected.Group("/analytics")
	analytics.GET("/summary", analyticsHandler.Summary)
	analytics.GET("/category-summary", analyticsHandler.CategorySummary)
	analytics.GET("/budget-check", analyticsHandler.BudgetCheck)

	return engine
}
