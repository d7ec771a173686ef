// Package server wires services, handlers and middleware into the HTTP router.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "budgetdash/internal/docs" // Import swagger docs
	"budgetdash/internal/handlers"
	"budgetdash/internal/logger"
	"budgetdash/internal/middleware"
	"budgetdash/internal/services"
)

const healthTimeout = 2 * time.Second

// NewRouter builds the application router on top of db. Sessions are issued
// and verified by issuer.
func NewRouter(db *gorm.DB, issuer *middleware.TokenIssuer) *gin.Engine {
	// Services
	identityService := services.NewIdentityService(db)
	budgetService := services.NewBudgetService(db)
	itemService := services.NewBudgetItemService(db)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(identityService, issuer, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	itemHandler := handlers.NewBudgetItemHandler(itemService, auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.NoRoute(middleware.NotFound)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	// Health check endpoint
	api.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			logger.Get().Warnw("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public identity routes
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/logout", authHandler.Logout)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(issuer))

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/dashboard", budgetHandler.GetDashboard)

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	budgets.POST("/:id/items", itemHandler.CreateItem)
	budgets.GET("/:id/items/:itemId", itemHandler.GetItem)
	budgets.PUT("/:id/items/:itemId", itemHandler.UpdateItem)
	budgets.DELETE("/:id/items/:itemId", itemHandler.DeleteItem)

	return router
}
