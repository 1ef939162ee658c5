package reels

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelworks/reel-api/api/types"
)

// PostReprocess enqueues a reprocess job for a reel
// @Summary      Start video reprocessing
// @Description  Enqueue a background job that re-derives video attributes for the reel. At most one job may run per reel at a time; a second request while one is active fails with 409.
// @Tags         reels
// @Produce      json
// @Param        id path string true "Reel ID"
// @Success      202 {object} types.ReprocessAcceptedResponse "Job accepted"
// @Failure      404 {object} types.ErrorResponse "Reel not found"
// @Failure      409 {object} types.ErrorResponse "A job is already running for this reel"
// @Router       /api/v1/reels/{id}/reprocess [post]
func PostReprocess(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		reelID := c.Param("id")

		reel, err := deps.ReelService.GetReel(c.Request.Context(), reelID)
		if err != nil {
			types.SendError(c, err)
			return
		}

		job, err := deps.JobService.StartReprocess(c.Request.Context(), reel)
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusAccepted, types.ReprocessAcceptedResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Reprocess job queued"},
			JobID:        job.JobID,
		})
	}
}

// GetReprocessStatus returns the polling record for a reprocess job
// @Summary      Poll reprocess status
// @Description  Return the current status, progress, and outcome of a reprocess job.
// @Tags         reels
// @Produce      json
// @Param        id path string true "Reel ID"
// @Param        jobId path string true "Job ID"
// @Success      200 {object} types.ReprocessStatusResponse "Job status"
// @Failure      404 {object} types.ErrorResponse "Job not found"
// @Router       /api/v1/reels/{id}/reprocess/{jobId} [get]
func GetReprocessStatus(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID := c.Param("jobId")

		status, err := deps.JobService.GetStatus(c.Request.Context(), jobID)
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.ReprocessStatusResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Job:          status,
		})
	}
}
