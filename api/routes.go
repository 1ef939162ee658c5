package api

import (
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/reelworks/reel-api/api/health"
	"github.com/reelworks/reel-api/api/reels"
	"github.com/reelworks/reel-api/api/types"
	"github.com/reelworks/reel-api/api/version"
	_ "github.com/reelworks/reel-api/docs/swagger"
	jobsService "github.com/reelworks/reel-api/internal/services/jobs"
	reelsService "github.com/reelworks/reel-api/internal/services/reels"
	transcriptsService "github.com/reelworks/reel-api/internal/services/transcripts"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Reel editing routes need a database behind them
	if deps.DB != nil && deps.DB.DB != nil {
		initializeServices(deps)

		// General rate limiting (10 req/s, burst of 20). The transcript PUT
		// and metadata PATCH share the group; editors save infrequently.
		v1 := engine.Group("/api/v1")
		reelGroup := v1.Group("/reels")
		reelGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
		reels.RegisterRoutes(reelGroup, deps)
	}

	return nil
}

// initializeServices creates any services not already set on deps
func initializeServices(deps *types.Dependencies) {
	if deps.ReelService == nil {
		reelRepo := reelsService.NewRepository(deps.DB.DB)
		deps.ReelService = reelsService.NewService(reelRepo)
	}

	if deps.TranscriptService == nil {
		transcriptRepo := transcriptsService.NewRepository(deps.DB.DB)
		deps.TranscriptService = transcriptsService.NewService(transcriptRepo)
	}

	if deps.JobService == nil {
		jobRepo := jobsService.NewRepository(deps.DB.DB)
		deps.JobService = jobsService.NewService(jobRepo)
	}
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
