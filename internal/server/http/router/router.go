package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/rype/internal/config"
	"github.com/polkiloo/rype/internal/server/http/handlers"
	"github.com/polkiloo/rype/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.CORS(cfg.FrontendOrigins))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Route not found"})
	})

	authHandler := handlers.NewAuthHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)

	private := api.Group("")
	private.Use(middleware.AuthRequired(facade))
	private.GET("/profile", authHandler.Profile)
	private.PUT("/profile", authHandler.UpdateProfile)
	private.POST("/orders", orderHandler.Create)
	private.GET("/orders/my-orders", orderHandler.Mine)
	private.GET("/orders/:orderId", orderHandler.Get)
	private.GET("/orders/:orderId/tracking", orderHandler.Tracking)

	admin := private.Group("/admin")
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/orders", adminHandler.Orders)
	admin.GET("/orders/export", adminHandler.Export)
	admin.PUT("/orders/:orderId/status", adminHandler.UpdateStatus)

	return engine
}
