package session

import (
	"context"
	"fmt"
	"reflect"

	"github.com/reelworks/reel-api/internal/models"
	apperrors "github.com/reelworks/reel-api/pkg/errors"
	"github.com/reelworks/reel-api/pkg/timeindex"
)

// TimeField selects which edge of a segment a time adjustment moves
type TimeField string

const (
	TimeFieldStart TimeField = "start"
	TimeFieldEnd   TimeField = "end"
)

// TranscriptSync owns the working copy of a transcript's segments and tracks
// whether it has drifted from the last committed baseline. It is not safe
// for concurrent use; the owning session serializes access.
type TranscriptSync struct {
	collab Collaborator
	reelID string

	baseline *models.Transcript
	working  models.SegmentList
}

// NewTranscriptSync creates an engine with no transcript loaded
func NewTranscriptSync(collab Collaborator, reelID string) *TranscriptSync {
	return &TranscriptSync{collab: collab, reelID: reelID}
}

// Load replaces the working copy with a fresh transcript and clears the
// dirty state. This is the only way a clean baseline is established.
func (ts *TranscriptSync) Load(transcript *models.Transcript) {
	ts.baseline = transcript
	ts.working = cloneSegments(transcript.Segments)
}

// Loaded reports whether a transcript has been loaded
func (ts *TranscriptSync) Loaded() bool {
	return ts.baseline != nil
}

// Segments returns a copy of the working segment list
func (ts *TranscriptSync) Segments() models.SegmentList {
	return cloneSegments(ts.working)
}

// Version returns the baseline transcript version, or 0 when nothing is loaded
func (ts *TranscriptSync) Version() int {
	if ts.baseline == nil {
		return 0
	}
	return ts.baseline.Version
}

// EditSegmentText replaces the text of one working-copy segment
func (ts *TranscriptSync) EditSegmentText(segmentID, newText string) error {
	idx, err := ts.findSegment(segmentID)
	if err != nil {
		return err
	}
	ts.working[idx].Text = newText
	return nil
}

// AdjustTime shifts one edge of a segment by deltaSeconds, clamping the
// result at zero. Deliberately does not enforce start < end or neighbor
// non-overlap; that re-validation happens at commit time.
func (ts *TranscriptSync) AdjustTime(segmentID string, field TimeField, deltaSeconds float64) error {
	idx, err := ts.findSegment(segmentID)
	if err != nil {
		return err
	}

	switch field {
	case TimeFieldStart:
		v := ts.working[idx].StartTime + deltaSeconds
		if v < 0 {
			v = 0
		}
		ts.working[idx].StartTime = v
	case TimeFieldEnd:
		v := ts.working[idx].EndTime + deltaSeconds
		if v < 0 {
			v = 0
		}
		ts.working[idx].EndTime = v
	default:
		return apperrors.Validation("field", fmt.Sprintf("unknown time field %q", field))
	}
	return nil
}

// ActiveSegment resolves the working-copy segment containing playbackTime,
// so edited timings are reflected immediately in playback highlighting.
func (ts *TranscriptSync) ActiveSegment(playbackTime float64) (*models.TranscriptSegment, bool) {
	spans := make([]timeindex.Span, len(ts.working))
	for i, seg := range ts.working {
		spans[i] = timeindex.Span{Start: seg.StartTime, End: seg.EndTime}
	}

	idx, found := timeindex.Locate(spans, playbackTime)
	if !found {
		return nil, false
	}
	seg := ts.working[idx]
	return &seg, true
}

// SeekTarget returns the playback position for jumping to a segment
func (ts *TranscriptSync) SeekTarget(segmentID string) (float64, error) {
	idx, err := ts.findSegment(segmentID)
	if err != nil {
		return 0, err
	}
	return ts.working[idx].StartTime, nil
}

// IsDirty reports whether the working copy differs by value from the
// baseline. Edits that restore the original values leave the copy clean.
func (ts *TranscriptSync) IsDirty() bool {
	if ts.baseline == nil {
		return false
	}
	if len(ts.working) != len(ts.baseline.Segments) {
		return true
	}
	return !reflect.DeepEqual(ts.working, ts.baseline.Segments)
}

// Commit sends the full working copy to the server. On success the working
// copy becomes the new baseline; on failure it is left untouched so the
// caller can retry or Reset.
func (ts *TranscriptSync) Commit(ctx context.Context, changeNote string) (*models.Transcript, error) {
	if ts.baseline == nil {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "no transcript loaded")
	}
	if err := ts.validateForCommit(); err != nil {
		return nil, err
	}

	updated, err := ts.collab.ReplaceTranscript(ctx, ts.reelID, cloneSegments(ts.working), changeNote)
	if err != nil {
		return nil, err
	}

	ts.Load(updated)
	return updated, nil
}

// Reset discards unsaved edits, restoring the working copy to the baseline
func (ts *TranscriptSync) Reset() {
	if ts.baseline == nil {
		return
	}
	ts.working = cloneSegments(ts.baseline.Segments)
}

// validateForCommit re-checks the range invariants that per-field time
// adjustments may have broken since load
func (ts *TranscriptSync) validateForCommit() error {
	for i, seg := range ts.working {
		if seg.StartTime >= seg.EndTime {
			return apperrors.Validation("segments", fmt.Sprintf("segment %s start time must be before end time", seg.ID))
		}
		if i > 0 && seg.StartTime < ts.working[i-1].EndTime {
			return apperrors.Validation("segments", fmt.Sprintf("segment %s overlaps its predecessor", seg.ID))
		}
	}
	return nil
}

func (ts *TranscriptSync) findSegment(segmentID string) (int, error) {
	for i, seg := range ts.working {
		if seg.ID == segmentID {
			return i, nil
		}
	}
	return 0, apperrors.NotFound("segment", segmentID)
}

func cloneSegments(segments models.SegmentList) models.SegmentList {
	out := make(models.SegmentList, len(segments))
	copy(out, segments)
	for i := range out {
		if out[i].Confidence != nil {
			c := *out[i].Confidence
			out[i].Confidence = &c
		}
	}
	return out
}
