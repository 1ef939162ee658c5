package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/reelworks/reel-api/internal/models"
	"github.com/reelworks/reel-api/internal/services/cache"
	apperrors "github.com/reelworks/reel-api/pkg/errors"
)

const defaultViewTTL = 5 * time.Minute

// EditSession coordinates all editing concerns for a single reel: metadata
// commits with rollback, the transcript working copy, and reprocess job
// tracking. Each session owns its cached views outright; nothing is shared
// across sessions for different reels.
type EditSession struct {
	collab Collaborator
	reelID string

	transcript *TranscriptSync
	tracker    *JobTracker

	views      cache.Cache
	ownedCache bool
	viewTTL    time.Duration

	mu                 sync.Mutex
	currentVersion     int
	metadataInFlight   bool
	transcriptInFlight bool
}

// Option is a functional option for configuring an edit session
type Option func(*EditSession)

// WithPollInterval sets the reprocess polling cadence
func WithPollInterval(interval time.Duration) Option {
	return func(s *EditSession) {
		if interval > 0 {
			s.tracker.pollInterval = interval
		}
	}
}

// WithViewCache supplies an externally owned cache for the session's views
func WithViewCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *EditSession) {
		if c != nil {
			s.views = c
			s.ownedCache = false
		}
		if ttl > 0 {
			s.viewTTL = ttl
		}
	}
}

// NewEditSession creates an editing session for one reel
func NewEditSession(collab Collaborator, reelID string, opts ...Option) *EditSession {
	s := &EditSession{
		collab:     collab,
		reelID:     reelID,
		transcript: NewTranscriptSync(collab, reelID),
		tracker:    NewJobTracker(collab, reelID, DefaultPollInterval),
		views:      cache.NewMemoryCache(),
		ownedCache: true,
		viewTTL:    defaultViewTTL,
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// View cache keys, scoped per reel
func (s *EditSession) reelKey() string       { return "session:reel:" + s.reelID }
func (s *EditSession) versionsKey() string   { return "session:versions:" + s.reelID }
func (s *EditSession) transcriptKey() string { return "session:transcript:" + s.reelID }

// Reel returns the session's view of the reel, re-fetching only after
// invalidation or expiry
func (s *EditSession) Reel(ctx context.Context) (*models.Reel, error) {
	if data, ok := s.views.Get(ctx, s.reelKey()); ok {
		var reel models.Reel
		if err := json.Unmarshal(data, &reel); err == nil {
			return &reel, nil
		}
	}

	reel, err := s.collab.FetchReel(ctx, s.reelID)
	if err != nil {
		return nil, err
	}
	s.storeView(ctx, s.reelKey(), reel)

	s.mu.Lock()
	s.currentVersion = reel.CurrentVersion
	s.mu.Unlock()
	return reel, nil
}

// Versions returns the reel's revision history, ascending by version number
func (s *EditSession) Versions(ctx context.Context) ([]models.ReelVersion, error) {
	if data, ok := s.views.Get(ctx, s.versionsKey()); ok {
		var versions []models.ReelVersion
		if err := json.Unmarshal(data, &versions); err == nil {
			return versions, nil
		}
	}

	versions, err := s.collab.FetchVersions(ctx, s.reelID)
	if err != nil {
		return nil, err
	}
	s.storeView(ctx, s.versionsKey(), versions)
	return versions, nil
}

// Transcript returns the session's transcript view. A cache miss re-fetches
// and loads the fresh copy into the sync engine, establishing a clean
// baseline, unless the working copy carries unsaved edits. Passive TTL
// expiry is not an invalidation: only Invalidate or ResetTranscript may
// discard a dirty working copy.
func (s *EditSession) Transcript(ctx context.Context) (*models.Transcript, error) {
	if data, ok := s.views.Get(ctx, s.transcriptKey()); ok {
		var transcript models.Transcript
		if err := json.Unmarshal(data, &transcript); err == nil {
			return &transcript, nil
		}
	}

	transcript, err := s.collab.FetchTranscript(ctx, s.reelID)
	if err != nil {
		return nil, err
	}
	s.storeView(ctx, s.transcriptKey(), transcript)
	if !s.transcript.IsDirty() {
		s.transcript.Load(transcript)
	}
	return transcript, nil
}

// CommitMetadata validates and commits a metadata patch against the
// session's view of the current version. A second metadata commit issued
// while one is pending fails fast instead of queuing.
func (s *EditSession) CommitMetadata(ctx context.Context, patch models.MetadataPatch, changeNote string) (*models.Reel, error) {
	if err := patch.Validate(); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeValidation, err.Error())
	}

	if err := s.acquireMetadata(); err != nil {
		return nil, err
	}
	defer s.releaseMetadata()

	reel, err := s.Reel(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := s.collab.PatchMetadata(ctx, s.reelID, patch, reel.CurrentVersion, changeNote)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, s.reelKey(), s.versionsKey())
	s.mu.Lock()
	s.currentVersion = updated.CurrentVersion
	s.mu.Unlock()
	return updated, nil
}

// Rollback restores an older version as a new one. Shares the metadata
// commit slot so it cannot interleave with a pending metadata commit.
func (s *EditSession) Rollback(ctx context.Context, versionID string) (*models.Reel, error) {
	if err := s.acquireMetadata(); err != nil {
		return nil, err
	}
	defer s.releaseMetadata()

	updated, err := s.collab.RollbackToVersion(ctx, s.reelID, versionID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, s.reelKey(), s.versionsKey())
	s.mu.Lock()
	s.currentVersion = updated.CurrentVersion
	s.mu.Unlock()
	return updated, nil
}

// CommitTranscript sends the transcript working copy to the server
func (s *EditSession) CommitTranscript(ctx context.Context, changeNote string) (*models.Transcript, error) {
	s.mu.Lock()
	if s.transcriptInFlight {
		s.mu.Unlock()
		return nil, apperrors.CommitInProgress("transcript")
	}
	s.transcriptInFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.transcriptInFlight = false
		s.mu.Unlock()
	}()

	updated, err := s.transcript.Commit(ctx, changeNote)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, s.transcriptKey())
	return updated, nil
}

// Transcript working-copy passthroughs

func (s *EditSession) EditSegmentText(segmentID, newText string) error {
	return s.transcript.EditSegmentText(segmentID, newText)
}

func (s *EditSession) AdjustSegmentTime(segmentID string, field TimeField, deltaSeconds float64) error {
	return s.transcript.AdjustTime(segmentID, field, deltaSeconds)
}

func (s *EditSession) ActiveSegment(playbackTime float64) (*models.TranscriptSegment, bool) {
	return s.transcript.ActiveSegment(playbackTime)
}

func (s *EditSession) SeekTarget(segmentID string) (float64, error) {
	return s.transcript.SeekTarget(segmentID)
}

func (s *EditSession) TranscriptDirty() bool {
	return s.transcript.IsDirty()
}

func (s *EditSession) ResetTranscript() {
	s.transcript.Reset()
}

// StartReprocess requests server-side reprocessing and begins polling. On
// terminal success the reel view is invalidated, since reprocessing may have
// changed video attributes such as duration or thumbnail.
func (s *EditSession) StartReprocess(ctx context.Context, onTerminal TerminalFunc) (string, error) {
	return s.tracker.Start(ctx, func(status *models.ReprocessStatus) {
		if status.Status == models.JobStatusCompleted {
			s.invalidate(ctx, s.reelKey())
		}
		if onTerminal != nil {
			onTerminal(status)
		}
	})
}

// CancelReprocess stops observing the current reprocess job. Idempotent.
func (s *EditSession) CancelReprocess() {
	s.tracker.Cancel()
}

// ReprocessState returns the tracker's local state
func (s *EditSession) ReprocessState() models.JobStatus {
	return s.tracker.State()
}

// LastPollError exposes the most recent transient polling failure
func (s *EditSession) LastPollError() error {
	return s.tracker.LastPollError()
}

// Invalidate drops every cached view and any unsaved transcript edits; the
// next reads re-fetch and establish a fresh baseline
func (s *EditSession) Invalidate(ctx context.Context) {
	s.transcript.Reset()
	s.invalidate(ctx, s.reelKey(), s.versionsKey(), s.transcriptKey())
}

// Close tears the session down: polling stops and owned resources are
// released. Safe to call more than once.
func (s *EditSession) Close() {
	s.tracker.Cancel()
	if s.ownedCache {
		s.views.Stop()
		s.ownedCache = false
	}
}

func (s *EditSession) acquireMetadata() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.metadataInFlight {
		return apperrors.CommitInProgress("metadata")
	}
	s.metadataInFlight = true
	return nil
}

func (s *EditSession) releaseMetadata() {
	s.mu.Lock()
	s.metadataInFlight = false
	s.mu.Unlock()
}

func (s *EditSession) storeView(ctx context.Context, key string, view interface{}) {
	data, err := json.Marshal(view)
	if err != nil {
		log.Printf("[ERROR] Caching view %s: %v", key, err)
		return
	}
	_ = s.views.Set(ctx, key, data, s.viewTTL)
}

func (s *EditSession) invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		_ = s.views.Delete(ctx, key)
	}
}
