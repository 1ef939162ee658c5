package reels

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelworks/reel-api/api/types"
)

// GetTranscript returns the stored transcript for a reel
// @Summary      Get reel transcript
// @Description  Return the transcript segments and version counter for a reel.
// @Tags         reels
// @Produce      json
// @Param        id path string true "Reel ID"
// @Success      200 {object} types.TranscriptResponse "Transcript"
// @Failure      404 {object} types.ErrorResponse "Transcript not found"
// @Router       /api/v1/reels/{id}/transcript [get]
func GetTranscript(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		reelID := c.Param("id")

		transcript, err := deps.TranscriptService.GetTranscript(c.Request.Context(), reelID)
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.TranscriptResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Transcript:   transcript,
		})
	}
}

// PutTranscript replaces the transcript segments wholesale
// @Summary      Replace reel transcript
// @Description  Replace the full segment list. Segments must be ordered, non-overlapping, with start strictly before end. The transcript version counter is bumped on success.
// @Tags         reels
// @Accept       json
// @Produce      json
// @Param        id path string true "Reel ID"
// @Param        body body types.ReplaceTranscriptRequest true "Replacement segment list"
// @Success      200 {object} types.TranscriptResponse "Updated transcript"
// @Failure      400 {object} types.ErrorResponse "Segment validation failed"
// @Failure      404 {object} types.ErrorResponse "Transcript not found"
// @Router       /api/v1/reels/{id}/transcript [put]
func PutTranscript(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		reelID := c.Param("id")

		var req types.ReplaceTranscriptRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		transcript, err := deps.TranscriptService.ReplaceSegments(
			c.Request.Context(),
			reelID,
			req.Segments,
			req.ChangeNote,
			req.UpdatedBy,
		)
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.TranscriptResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Transcript updated"},
			Transcript:   transcript,
		})
	}
}
