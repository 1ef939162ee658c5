package reels

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelworks/reel-api/api/types"
)

// GetReel returns a reel by its identifier
// @Summary      Get reel
// @Description  Retrieve a reel's metadata, video attributes, and current version number
// @Tags         reels
// @Produce      json
// @Param        id path string true "Reel ID"
// @Success      200 {object} types.ReelResponse "Reel"
// @Failure      404 {object} types.ErrorResponse "Reel not found"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/reels/{id} [get]
func GetReel(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		reelID := c.Param("id")

		reel, err := deps.ReelService.GetReel(c.Request.Context(), reelID)
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.ReelResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Reel:         reel,
		})
	}
}
