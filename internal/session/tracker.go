package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/reelworks/reel-api/internal/models"
	apperrors "github.com/reelworks/reel-api/pkg/errors"
)

// DefaultPollInterval is the cadence at which a tracker queries job status
const DefaultPollInterval = 2 * time.Second

// TerminalFunc is invoked exactly once when a tracked job reaches a
// terminal state
type TerminalFunc func(status *models.ReprocessStatus)

// JobTracker observes one server-side reprocess job through polling. It
// drives the local state machine idle -> queued -> processing ->
// {completed, failed}; the remote job itself is entirely server-owned.
type JobTracker struct {
	collab       Collaborator
	reelID       string
	pollInterval time.Duration

	mu          sync.Mutex
	state       models.JobStatus
	jobID       string
	generation  int
	cancelPoll  context.CancelFunc
	lastPollErr error

	// cbMu serializes Cancel with the terminal callback so a cancellation
	// landing between the final status update and the callback still wins.
	cbMu sync.Mutex
}

// NewJobTracker creates a tracker in the idle state
func NewJobTracker(collab Collaborator, reelID string, pollInterval time.Duration) *JobTracker {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &JobTracker{
		collab:       collab,
		reelID:       reelID,
		pollInterval: pollInterval,
		state:        models.JobStatusIdle,
	}
}

// Start requests reprocessing and begins polling. Fails fast when a job is
// already being tracked in a non-terminal state.
func (t *JobTracker) Start(ctx context.Context, onTerminal TerminalFunc) (string, error) {
	t.mu.Lock()
	if t.state == models.JobStatusQueued || t.state == models.JobStatusProcessing {
		t.mu.Unlock()
		return "", apperrors.AlreadyRunning(t.reelID)
	}
	// Reserve the slot before the network call so a second Start issued
	// while this one is in flight fails fast too.
	t.state = models.JobStatusQueued
	t.generation++
	gen := t.generation
	t.mu.Unlock()

	jobID, err := t.collab.StartReprocess(ctx, t.reelID)
	if err != nil {
		t.mu.Lock()
		if t.generation == gen {
			t.state = models.JobStatusIdle
		}
		t.mu.Unlock()
		return "", err
	}

	t.mu.Lock()
	if t.generation != gen {
		// Cancelled while the start request was in flight; the remote job
		// may still run server-side, we simply never observe it.
		t.mu.Unlock()
		return jobID, nil
	}
	t.jobID = jobID
	pollCtx, cancel := context.WithCancel(ctx)
	t.cancelPoll = cancel
	t.mu.Unlock()

	go t.poll(pollCtx, gen, jobID, onTerminal)
	return jobID, nil
}

// poll queries job status at a fixed cadence until a terminal status arrives
// or the tracker is cancelled. At most one poll is outstanding at a time.
func (t *JobTracker) poll(ctx context.Context, gen int, jobID string, onTerminal TerminalFunc) {
	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		status, err := t.collab.FetchReprocessStatus(ctx, t.reelID, jobID)

		t.mu.Lock()
		if t.generation != gen {
			// Cancelled while this poll was in flight; discard the result.
			t.mu.Unlock()
			return
		}
		if err != nil {
			// Transient failures never terminate the poll loop; the error
			// stays observable through LastPollError.
			t.lastPollErr = err
			t.mu.Unlock()
			log.Printf("[DEBUG] Poll for job %s failed, will retry: %v", jobID, err)
			continue
		}
		t.lastPollErr = nil
		// Only ever advance: a stale queued response observed after the
		// job started processing must not move the machine backward.
		if statusRank(status.Status) > statusRank(t.state) {
			t.state = status.Status
		}
		terminal := status.Status.IsTerminal()
		t.mu.Unlock()

		if terminal {
			t.cbMu.Lock()
			t.mu.Lock()
			live := t.generation == gen
			t.mu.Unlock()
			if live && onTerminal != nil {
				onTerminal(status)
			}
			t.cbMu.Unlock()
			return
		}
	}
}

// Cancel stops observing the job without aborting it server-side. Idempotent;
// the local state returns to idle and any in-flight poll result is discarded.
// Once Cancel returns, the terminal callback can no longer fire for the
// cancelled run. Must not be called from inside the callback itself.
func (t *JobTracker) Cancel() {
	t.cbMu.Lock()
	defer t.cbMu.Unlock()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancelPoll != nil {
		t.cancelPoll()
		t.cancelPoll = nil
	}
	t.generation++
	t.state = models.JobStatusIdle
	t.jobID = ""
}

// State returns the tracker's current local state
func (t *JobTracker) State() models.JobStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// JobID returns the identifier of the tracked job, if any
func (t *JobTracker) JobID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.jobID
}

// LastPollError exposes the most recent transient polling failure, or nil
// after a successful poll
func (t *JobTracker) LastPollError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastPollErr
}

func statusRank(s models.JobStatus) int {
	switch s {
	case models.JobStatusIdle:
		return 0
	case models.JobStatusQueued:
		return 1
	case models.JobStatusProcessing:
		return 2
	case models.JobStatusCompleted, models.JobStatusFailed:
		return 3
	}
	return 0
}
