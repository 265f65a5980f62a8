package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"awards-backend/internal/shared/middleware"
	"awards-backend/internal/shared/response"
	"awards-backend/pkg/container"
	"awards-backend/pkg/metrics"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.CORS(c.Config.App.CORSAllowedOrigins),
	)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupCategoryRoutes(v1, c)
		setupVoteRoutes(v1, c)
		setupNominationRoutes(v1, c)
		setupEngagementRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// CATEGORY ROUTES
// ========================================
func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/categories", c.CategoryHandler.ListCategories)
}

// ========================================
// VOTE ROUTES
// ========================================
func setupVoteRoutes(v1 *gin.RouterGroup, c *container.Container) {
	votes := v1.Group("/votes")
	{
		votes.POST("", c.VoteHandler.SubmitVote)
		votes.GET("/status", c.VoteHandler.VoteStatus)
		votes.GET("/me", c.VoteHandler.MyVote)
	}

	v1.GET("/results", c.VoteHandler.GetResults)
}

// ========================================
// NOMINATION ROUTES
// ========================================
func setupNominationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/nominations", c.NominationHandler.CreateNomination)
}

// ========================================
// ENGAGEMENT ROUTES
// ========================================
func setupEngagementRoutes(v1 *gin.RouterGroup, c *container.Container) {
	nominees := v1.Group("/nominees/:id")
	{
		nominees.GET("", c.EngagementHandler.GetNominee)
		nominees.GET("/comments", c.EngagementHandler.ListComments)
		nominees.POST("/comments", c.EngagementHandler.AddComment)
		nominees.POST("/likes", c.EngagementHandler.LikeNominee)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/admin/login", c.AdminHandler.Login)
	v1.POST("/admin/logout", c.AdminHandler.Logout)
	v1.GET("/admin/session", c.AdminHandler.Session)

	admin := v1.Group("/admin")
	admin.Use(middleware.AdminMiddleware(c.JWTManager))
	{
		admin.PUT("/categories/:id", c.CategoryHandler.UpsertCategory)
		admin.POST("/nominees", c.CategoryHandler.CreateNominee)
		admin.PUT("/nominees/:id", c.CategoryHandler.UpdateNominee)
		admin.DELETE("/nominees/:id", c.CategoryHandler.DeleteNominee)

		admin.GET("/votes", c.VoteHandler.ListVoters)
		admin.GET("/votes/tally", c.VoteHandler.GetTally)
		admin.GET("/votes/export", c.VoteHandler.ExportResults)

		admin.GET("/nominations", c.NominationHandler.ListNominations)
	}
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		services, healthy := appCtx.HealthCheck(ctx)
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  services,
		}
		if stats, err := appCtx.DB.Stats(); err == nil {
			health["db_pool"] = stats
		}

		status := http.StatusOK
		switch {
		case !healthy:
			health["status"] = "unhealthy"
			status = http.StatusServiceUnavailable
		case services["redis"] != "up":
			health["status"] = "degraded"
		}
		c.JSON(status, health)
	}
}
