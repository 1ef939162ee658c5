package reels

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/reelworks/reel-api/api/types"
	"github.com/reelworks/reel-api/internal/models"
)

// CreateReel creates a new reel with an initial version record
// @Summary      Create reel
// @Description  Create a new reel; version history starts at version 1. An optional segment list seeds the reel's transcript.
// @Tags         reels
// @Accept       json
// @Produce      json
// @Param        reel body types.CreateReelRequest true "Reel data"
// @Success      201 {object} types.ReelResponse "Created reel"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/reels [post]
func CreateReel(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CreateReelRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		reel := &models.Reel{
			Title:        req.Title,
			Description:  req.Description,
			Tags:         req.Tags,
			Category:     req.Category,
			Machine:      req.Machine,
			Tooling:      req.Tooling,
			ProcessStep:  req.ProcessStep,
			SkillLevel:   req.SkillLevel,
			Language:     req.Language,
			Visibility:   req.Visibility,
			VideoURL:     req.VideoURL,
			UploaderID:   req.UploaderID,
			UploaderName: req.UploaderName,
		}

		if err := deps.ReelService.CreateReel(c.Request.Context(), reel, req.UploaderName); err != nil {
			types.SendError(c, err)
			return
		}

		if len(req.Segments) > 0 {
			transcript := &models.Transcript{
				UUID:     uuid.New().String(),
				ReelID:   reel.ID,
				ReelUUID: reel.UUID,
				Segments: req.Segments,
				Language: req.Language,
			}
			if err := deps.TranscriptService.CreateTranscript(c.Request.Context(), transcript); err != nil {
				types.SendError(c, err)
				return
			}
		}

		c.JSON(http.StatusCreated, types.ReelResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Reel:         reel,
		})
	}
}
