package reels

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelworks/reel-api/api/types"
	"github.com/reelworks/reel-api/internal/services/reels"
)

// PatchMetadata commits a partial metadata update as a new version
// @Summary      Update reel metadata
// @Description  Apply a partial metadata update, creating a new version snapshot. Fails with 409 when expected_version is stale.
// @Tags         reels
// @Accept       json
// @Produce      json
// @Param        id path string true "Reel ID"
// @Param        patch body types.UpdateMetadataRequest true "Metadata patch with expected version"
// @Success      200 {object} types.ReelResponse "Updated reel"
// @Failure      400 {object} types.ErrorResponse "Validation failed"
// @Failure      404 {object} types.ErrorResponse "Reel not found"
// @Failure      409 {object} types.ErrorResponse "Stale version"
// @Router       /api/v1/reels/{id} [patch]
func PatchMetadata(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		reelID := c.Param("id")

		var req types.UpdateMetadataRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		reel, _, err := deps.ReelService.CommitMetadata(
			c.Request.Context(),
			reelID,
			req.MetadataPatch,
			req.ExpectedVersion,
			reels.CommitInfo{
				Author:     req.ChangedBy,
				AuthorName: req.ChangedByName,
				ChangeNote: req.ChangeNote,
			},
		)
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.ReelResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Metadata updated"},
			Reel:         reel,
		})
	}
}
