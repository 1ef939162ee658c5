package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/reelworks/reel-api/internal/models"
	"github.com/reelworks/reel-api/internal/services/reels"
)

// MediaProbe inspects the stored media for a reel. Actual transcoding happens
// in an external pipeline; reprocessing here re-derives the attributes the
// editor cares about (duration, thumbnail).
type MediaProbe interface {
	Probe(ctx context.Context, videoURL string) (durationSeconds int, thumbnailURL string, err error)
}

// PipelineReprocessor walks a claimed job through the reprocessing phases and
// refreshes the reel's video attributes on success.
type PipelineReprocessor struct {
	reelService reels.ReelService
	probe       MediaProbe
	stepDelay   time.Duration
}

// Ensure PipelineReprocessor implements Reprocessor interface
var _ Reprocessor = (*PipelineReprocessor)(nil)

// NewPipelineReprocessor creates a reprocessor backed by a media probe.
// stepDelay spaces out progress updates so observers see distinct phases.
func NewPipelineReprocessor(reelService reels.ReelService, probe MediaProbe, stepDelay time.Duration) *PipelineReprocessor {
	return &PipelineReprocessor{
		reelService: reelService,
		probe:       probe,
		stepDelay:   stepDelay,
	}
}

// Reprocess runs each phase in order, reporting progress after each one
func (p *PipelineReprocessor) Reprocess(ctx context.Context, job *models.ReprocessJob, report func(progress int, message string)) error {
	phases := []struct {
		progress int
		message  string
	}{
		{10, "Fetching source media"},
		{35, "Analyzing video track"},
		{60, "Regenerating renditions"},
		{85, "Refreshing thumbnail"},
	}

	for _, phase := range phases {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.stepDelay):
		}
		report(phase.progress, phase.message)
	}

	reel, err := p.reelService.GetReel(ctx, job.ReelUUID)
	if err != nil {
		return fmt.Errorf("loading reel %s: %w", job.ReelUUID, err)
	}

	duration, thumbnailURL, err := p.probe.Probe(ctx, reel.VideoURL)
	if err != nil {
		return fmt.Errorf("probing media for reel %s: %w", job.ReelUUID, err)
	}

	if err := p.reelService.RefreshVideoAttributes(ctx, job.ReelID, duration, thumbnailURL); err != nil {
		return fmt.Errorf("refreshing video attributes: %w", err)
	}

	report(95, "Finalizing")
	return nil
}

// StaticProbe returns fixed media attributes. Used when no external probe
// binary is configured; keeps the reprocess pipeline observable end to end.
type StaticProbe struct {
	DurationSeconds int
	ThumbnailURL    string
}

// Ensure StaticProbe implements MediaProbe interface
var _ MediaProbe = (*StaticProbe)(nil)

func (s *StaticProbe) Probe(ctx context.Context, videoURL string) (int, string, error) {
	return s.DurationSeconds, s.ThumbnailURL, nil
}
