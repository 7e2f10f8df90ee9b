package router

import (
	"net/http"
	"time"

	"github.com/egrafes/egrafes-backend/internal/config"
	"github.com/egrafes/egrafes-backend/internal/handler"
	"github.com/egrafes/egrafes-backend/internal/middleware"
	"github.com/egrafes/egrafes-backend/internal/response"
	"github.com/egrafes/egrafes-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Record  *handler.RecordHandler
	Address *handler.AddressHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/logout", middleware.RequireUserJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireUserJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Registration Group (JWT) ───────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireUserJWT(authService))
	{
		api.GET("/records", handlers.Record.ListRecords)
		api.POST("/records", handlers.Record.SaveRecord)
		api.DELETE("/records/:id", handlers.Record.DeleteRecord)
		api.POST("/records/edit/cancel", handlers.Record.CancelEdit)
		api.POST("/records/:id/edit", handlers.Record.BeginEdit)
		api.GET("/records/export", handlers.Record.ExportRecords)

		api.GET("/addresses/postal-codes", handlers.Address.ListPostalCodes)
		api.GET("/addresses/:postal_code", handlers.Address.Lookup)
	}

	return router
}
