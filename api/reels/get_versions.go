package reels

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelworks/reel-api/api/types"
)

// GetVersions returns the revision history for a reel
// @Summary      List reel versions
// @Description  Return the append-only revision history ordered by version number ascending, with rollback eligibility computed per version.
// @Tags         reels
// @Produce      json
// @Param        id path string true "Reel ID"
// @Success      200 {object} types.VersionsResponse "Version history"
// @Failure      404 {object} types.ErrorResponse "Reel not found"
// @Router       /api/v1/reels/{id}/versions [get]
func GetVersions(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		reelID := c.Param("id")

		versions, err := deps.ReelService.ListVersions(c.Request.Context(), reelID)
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.VersionsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Versions:     versions,
			Count:        len(versions),
		})
	}
}
