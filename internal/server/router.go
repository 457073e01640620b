// Package server assembles the HTTP router: middleware, handlers and routes.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"plantonize/internal/config"
	"plantonize/internal/handlers"
	"plantonize/internal/logger"
	"plantonize/internal/middleware"
	"plantonize/internal/services"

	_ "plantonize/internal/docs" // Import swagger docs
)

const healthCheckTimeout = 2 * time.Second

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Mode returns the gin mode for the configured environment.
func Mode(cfg *config.Config) string {
	if cfg.IsProduction() {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}

// NewRouter wires services, handlers and middleware onto a gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB, metrics *middleware.Metrics) *gin.Engine {
	// Services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	evolutionService := services.NewEvolutionService(db, auditService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	evolutionHandler := handlers.NewEvolutionHandler(evolutionService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.CORS(cfg.AllowedOrigins()))
	router.Use(metrics.Middleware())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus scrape endpoint
	router.GET("/metrics", middleware.APIKeyMiddleware(cfg.MetricsAPIKey), metrics.Handler())

	api := router.Group("/api")
	api.GET("/health", healthHandler(db))

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/token", authHandler.Login)
	api.POST("/token/refresh", authHandler.Refresh)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/usuario", userHandler.GetCurrentUser)

	users := protected.Group("/usuarios")
	users.GET("", userHandler.ListUsers)
	users.PATCH("/:id", userHandler.UpdateRole)

	evolutions := protected.Group("/evolucoes")
	evolutions.GET("", evolutionHandler.ListEvolutions)
	evolutions.POST("", evolutionHandler.CreateEvolution)
	evolutions.GET("/:id", evolutionHandler.GetEvolution)
	evolutions.PUT("/:id", evolutionHandler.ReplaceEvolution)
	evolutions.PATCH("/:id", evolutionHandler.PatchEvolution)
	evolutions.DELETE("/:id", evolutionHandler.DeleteEvolution)
	evolutions.GET("/:id/logs", evolutionHandler.ListEvolutionLogs)

	return router
}

// healthHandler reports liveness and whether the database answers a ping
// @Summary     Liveness and database check
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse "Healthy"
// @Failure     503 {object} HealthResponse "Database unreachable"
// @Router      /health [get]
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			logger.Get().Warnw("Health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "unreachable"})
			return
		}
		c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
	}
}
