package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelworks/reel-api/internal/models"
	apperrors "github.com/reelworks/reel-api/pkg/errors"
)

const testPollInterval = 5 * time.Millisecond

// scriptStatuses returns each status in order, repeating the last one
func scriptStatuses(statuses ...models.JobStatus) func(ctx context.Context, reelID, jobID string) (*models.ReprocessStatus, error) {
	var mu sync.Mutex
	i := 0
	return func(ctx context.Context, reelID, jobID string) (*models.ReprocessStatus, error) {
		mu.Lock()
		defer mu.Unlock()
		status := statuses[i]
		if i < len(statuses)-1 {
			i++
		}
		return &models.ReprocessStatus{JobID: jobID, Status: status}, nil
	}
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal(msg)
}

func TestJobTracker_RunsToCompletion(t *testing.T) {
	collab := newFakeCollaborator()
	collab.startReprocessFunc = func(ctx context.Context, reelID string) (string, error) {
		return "job-1", nil
	}
	collab.fetchStatusFunc = scriptStatuses(
		models.JobStatusQueued,
		models.JobStatusProcessing,
		models.JobStatusCompleted,
	)

	tracker := NewJobTracker(collab, "reel-1", testPollInterval)
	assert.Equal(t, models.JobStatusIdle, tracker.State())

	var terminalCalls int32
	var terminalStatus *models.ReprocessStatus
	var mu sync.Mutex

	jobID, err := tracker.Start(context.Background(), func(status *models.ReprocessStatus) {
		atomic.AddInt32(&terminalCalls, 1)
		mu.Lock()
		terminalStatus = status
		mu.Unlock()
	})
	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)
	assert.Equal(t, "job-1", tracker.JobID())

	waitFor(t, func() bool { return atomic.LoadInt32(&terminalCalls) > 0 }, "terminal callback never fired")

	// Give any stray extra callback time to show up
	time.Sleep(10 * testPollInterval)
	assert.Equal(t, int32(1), atomic.LoadInt32(&terminalCalls), "terminal callback must fire exactly once")

	mu.Lock()
	require.NotNil(t, terminalStatus)
	assert.Equal(t, models.JobStatusCompleted, terminalStatus.Status)
	mu.Unlock()
	assert.Equal(t, models.JobStatusCompleted, tracker.State())
}

func TestJobTracker_SecondStartFailsFast(t *testing.T) {
	collab := newFakeCollaborator()
	collab.startReprocessFunc = func(ctx context.Context, reelID string) (string, error) {
		return "job-1", nil
	}
	collab.fetchStatusFunc = scriptStatuses(models.JobStatusProcessing)

	tracker := NewJobTracker(collab, "reel-1", testPollInterval)

	_, err := tracker.Start(context.Background(), nil)
	require.NoError(t, err)

	_, err = tracker.Start(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeAlreadyRunning))

	tracker.Cancel()
}

func TestJobTracker_StartFailureReturnsToIdle(t *testing.T) {
	collab := newFakeCollaborator()
	collab.startReprocessFunc = func(ctx context.Context, reelID string) (string, error) {
		return "", apperrors.Transport("POST reprocess", assert.AnError)
	}

	tracker := NewJobTracker(collab, "reel-1", testPollInterval)

	_, err := tracker.Start(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, models.JobStatusIdle, tracker.State())

	// The slot is free again
	collab.startReprocessFunc = func(ctx context.Context, reelID string) (string, error) {
		return "job-2", nil
	}
	collab.fetchStatusFunc = scriptStatuses(models.JobStatusCompleted)

	_, err = tracker.Start(context.Background(), nil)
	require.NoError(t, err)
	tracker.Cancel()
}

func TestJobTracker_CancelDiscardsLateResults(t *testing.T) {
	firstPoll := make(chan struct{})
	release := make(chan struct{})

	collab := newFakeCollaborator()
	collab.startReprocessFunc = func(ctx context.Context, reelID string) (string, error) {
		return "job-1", nil
	}
	var once sync.Once
	collab.fetchStatusFunc = func(ctx context.Context, reelID, jobID string) (*models.ReprocessStatus, error) {
		once.Do(func() { close(firstPoll) })
		<-release
		return &models.ReprocessStatus{JobID: jobID, Status: models.JobStatusCompleted}, nil
	}

	tracker := NewJobTracker(collab, "reel-1", testPollInterval)

	var terminalCalls int32
	_, err := tracker.Start(context.Background(), func(status *models.ReprocessStatus) {
		atomic.AddInt32(&terminalCalls, 1)
	})
	require.NoError(t, err)

	// Cancel while a poll is blocked in flight, then let it return
	<-firstPoll
	tracker.Cancel()
	close(release)

	time.Sleep(10 * testPollInterval)

	assert.Equal(t, int32(0), atomic.LoadInt32(&terminalCalls), "late poll result must be discarded after cancel")
	assert.Equal(t, models.JobStatusIdle, tracker.State())
	assert.Empty(t, tracker.JobID())
}

func TestJobTracker_CancelSynchronizesWithTerminalCallback(t *testing.T) {
	collab := newFakeCollaborator()
	collab.startReprocessFunc = func(ctx context.Context, reelID string) (string, error) {
		return "job-1", nil
	}
	collab.fetchStatusFunc = scriptStatuses(models.JobStatusCompleted)

	tracker := NewJobTracker(collab, "reel-1", testPollInterval)

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	_, err := tracker.Start(context.Background(), func(status *models.ReprocessStatus) {
		once.Do(func() { close(entered) })
		<-release
	})
	require.NoError(t, err)

	<-entered

	var cancelReturned int32
	go func() {
		tracker.Cancel()
		atomic.AddInt32(&cancelReturned, 1)
	}()

	// Cancel must not return while the terminal callback is still running;
	// otherwise a caller could observe idle state with the callback pending.
	time.Sleep(5 * testPollInterval)
	assert.Equal(t, int32(0), atomic.LoadInt32(&cancelReturned), "cancel returned while the terminal callback was running")

	close(release)
	waitFor(t, func() bool { return atomic.LoadInt32(&cancelReturned) == 1 }, "cancel never returned")
	assert.Equal(t, models.JobStatusIdle, tracker.State())
}

func TestJobTracker_CancelIsIdempotent(t *testing.T) {
	tracker := NewJobTracker(newFakeCollaborator(), "reel-1", testPollInterval)

	tracker.Cancel()
	tracker.Cancel()

	assert.Equal(t, models.JobStatusIdle, tracker.State())
}

func TestJobTracker_TransientPollErrorsAreRetried(t *testing.T) {
	collab := newFakeCollaborator()
	collab.startReprocessFunc = func(ctx context.Context, reelID string) (string, error) {
		return "job-1", nil
	}

	var polls int32
	collab.fetchStatusFunc = func(ctx context.Context, reelID, jobID string) (*models.ReprocessStatus, error) {
		n := atomic.AddInt32(&polls, 1)
		if n < 3 {
			return nil, apperrors.Transport("GET status", assert.AnError)
		}
		return &models.ReprocessStatus{JobID: jobID, Status: models.JobStatusCompleted}, nil
	}

	tracker := NewJobTracker(collab, "reel-1", testPollInterval)

	var terminalCalls int32
	_, err := tracker.Start(context.Background(), func(status *models.ReprocessStatus) {
		atomic.AddInt32(&terminalCalls, 1)
	})
	require.NoError(t, err)

	// The first failed poll is observable, then cleared by the next success
	waitFor(t, func() bool { return tracker.LastPollError() != nil }, "poll error never surfaced")
	waitFor(t, func() bool { return atomic.LoadInt32(&terminalCalls) > 0 }, "job never completed after retries")

	assert.NoError(t, tracker.LastPollError())
	assert.Equal(t, models.JobStatusCompleted, tracker.State())
}

func TestJobTracker_StaleStatusNeverMovesBackward(t *testing.T) {
	collab := newFakeCollaborator()
	collab.startReprocessFunc = func(ctx context.Context, reelID string) (string, error) {
		return "job-1", nil
	}
	// A stale queued response arrives after processing was observed
	collab.fetchStatusFunc = scriptStatuses(
		models.JobStatusProcessing,
		models.JobStatusQueued,
		models.JobStatusQueued,
	)

	tracker := NewJobTracker(collab, "reel-1", testPollInterval)

	_, err := tracker.Start(context.Background(), nil)
	require.NoError(t, err)

	waitFor(t, func() bool { return tracker.State() == models.JobStatusProcessing }, "tracker never reached processing")

	time.Sleep(10 * testPollInterval)
	assert.Equal(t, models.JobStatusProcessing, tracker.State(), "stale queued response must not regress the state")

	tracker.Cancel()
}
