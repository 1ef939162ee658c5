package reels

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelworks/reel-api/api/types"
	"github.com/reelworks/reel-api/internal/services/reels"
)

// PostRollback restores a reel to a prior version's state
// @Summary      Roll back to a version
// @Description  Append a new version whose state equals the target version's snapshot. History is never rewritten. Rolling back to the current version or a locked version is rejected.
// @Tags         reels
// @Accept       json
// @Produce      json
// @Param        id path string true "Reel ID"
// @Param        versionId path string true "Target version ID"
// @Param        body body types.RollbackRequest false "Attribution for the rollback"
// @Success      200 {object} types.ReelResponse "Reel at the restored state"
// @Failure      404 {object} types.ErrorResponse "Reel or version not found"
// @Failure      422 {object} types.ErrorResponse "Rollback not permitted for this version"
// @Router       /api/v1/reels/{id}/versions/{versionId}/rollback [post]
func PostRollback(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		reelID := c.Param("id")
		versionID := c.Param("versionId")

		// Attribution is optional on rollback
		var req types.RollbackRequest
		_ = c.ShouldBindJSON(&req)

		reel, _, err := deps.ReelService.Rollback(
			c.Request.Context(),
			reelID,
			versionID,
			reels.CommitInfo{
				Author:     req.ChangedBy,
				AuthorName: req.ChangedByName,
			},
		)
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.ReelResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Rollback applied"},
			Reel:         reel,
		})
	}
}
