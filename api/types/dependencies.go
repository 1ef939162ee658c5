package types

import (
	"github.com/reelworks/reel-api/internal/database"
	"github.com/reelworks/reel-api/internal/services/jobs"
	"github.com/reelworks/reel-api/internal/services/reels"
	"github.com/reelworks/reel-api/internal/services/transcripts"
	"github.com/reelworks/reel-api/internal/services/workers"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB                *database.DB
	ReelService       reels.ReelService
	TranscriptService transcripts.TranscriptService
	JobService        jobs.Service
	WorkerPool        *workers.WorkerPool
}
