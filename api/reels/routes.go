package reels

import (
	"github.com/gin-gonic/gin"

	"github.com/reelworks/reel-api/api/types"
)

// RegisterRoutes registers reel editing routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", CreateReel(deps))
	router.GET("/:id", GetReel(deps))
	router.PATCH("/:id", PatchMetadata(deps))

	router.GET("/:id/versions", GetVersions(deps))
	router.POST("/:id/versions/:versionId/rollback", PostRollback(deps))

	router.POST("/:id/reprocess", PostReprocess(deps))
	router.GET("/:id/reprocess/:jobId", GetReprocessStatus(deps))

	router.GET("/:id/transcript", GetTranscript(deps))
	router.PUT("/:id/transcript", PutTranscript(deps))
}
