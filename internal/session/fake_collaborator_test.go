package session

import (
	"context"
	"sync"

	"github.com/reelworks/reel-api/internal/models"
	apperrors "github.com/reelworks/reel-api/pkg/errors"
)

// fakeCollaborator scripts server behavior per method. Unset methods fail,
// so tests only wire what they exercise.
type fakeCollaborator struct {
	mu sync.Mutex

	fetchReelFunc         func(ctx context.Context, reelID string) (*models.Reel, error)
	patchMetadataFunc     func(ctx context.Context, reelID string, patch models.MetadataPatch, expectedVersion int, changeNote string) (*models.Reel, error)
	fetchVersionsFunc     func(ctx context.Context, reelID string) ([]models.ReelVersion, error)
	rollbackFunc          func(ctx context.Context, reelID, versionID string) (*models.Reel, error)
	startReprocessFunc    func(ctx context.Context, reelID string) (string, error)
	fetchStatusFunc       func(ctx context.Context, reelID, jobID string) (*models.ReprocessStatus, error)
	fetchTranscriptFunc   func(ctx context.Context, reelID string) (*models.Transcript, error)
	replaceTranscriptFunc func(ctx context.Context, reelID string, segments models.SegmentList, changeNote string) (*models.Transcript, error)

	calls map[string]int
}

func newFakeCollaborator() *fakeCollaborator {
	return &fakeCollaborator{calls: make(map[string]int)}
}

func (f *fakeCollaborator) record(method string) {
	f.mu.Lock()
	f.calls[method]++
	f.mu.Unlock()
}

func (f *fakeCollaborator) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeCollaborator) FetchReel(ctx context.Context, reelID string) (*models.Reel, error) {
	f.record("FetchReel")
	if f.fetchReelFunc == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "FetchReel not scripted")
	}
	return f.fetchReelFunc(ctx, reelID)
}

func (f *fakeCollaborator) PatchMetadata(ctx context.Context, reelID string, patch models.MetadataPatch, expectedVersion int, changeNote string) (*models.Reel, error) {
	f.record("PatchMetadata")
	if f.patchMetadataFunc == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "PatchMetadata not scripted")
	}
	return f.patchMetadataFunc(ctx, reelID, patch, expectedVersion, changeNote)
}

func (f *fakeCollaborator) FetchVersions(ctx context.Context, reelID string) ([]models.ReelVersion, error) {
	f.record("FetchVersions")
	if f.fetchVersionsFunc == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "FetchVersions not scripted")
	}
	return f.fetchVersionsFunc(ctx, reelID)
}

func (f *fakeCollaborator) RollbackToVersion(ctx context.Context, reelID, versionID string) (*models.Reel, error) {
	f.record("RollbackToVersion")
	if f.rollbackFunc == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "RollbackToVersion not scripted")
	}
	return f.rollbackFunc(ctx, reelID, versionID)
}

func (f *fakeCollaborator) StartReprocess(ctx context.Context, reelID string) (string, error) {
	f.record("StartReprocess")
	if f.startReprocessFunc == nil {
		return "", apperrors.New(apperrors.ErrCodeInternal, "StartReprocess not scripted")
	}
	return f.startReprocessFunc(ctx, reelID)
}

func (f *fakeCollaborator) FetchReprocessStatus(ctx context.Context, reelID, jobID string) (*models.ReprocessStatus, error) {
	f.record("FetchReprocessStatus")
	if f.fetchStatusFunc == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "FetchReprocessStatus not scripted")
	}
	return f.fetchStatusFunc(ctx, reelID, jobID)
}

func (f *fakeCollaborator) FetchTranscript(ctx context.Context, reelID string) (*models.Transcript, error) {
	f.record("FetchTranscript")
	if f.fetchTranscriptFunc == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "FetchTranscript not scripted")
	}
	return f.fetchTranscriptFunc(ctx, reelID)
}

func (f *fakeCollaborator) ReplaceTranscript(ctx context.Context, reelID string, segments models.SegmentList, changeNote string) (*models.Transcript, error) {
	f.record("ReplaceTranscript")
	if f.replaceTranscriptFunc == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "ReplaceTranscript not scripted")
	}
	return f.replaceTranscriptFunc(ctx, reelID, segments, changeNote)
}

var _ Collaborator = (*fakeCollaborator)(nil)

// testTranscript builds a three-segment transcript used across tests
func testTranscript(version int) *models.Transcript {
	return &models.Transcript{
		ReelUUID: "reel-1",
		Version:  version,
		Segments: models.SegmentList{
			{ID: "s1", StartTime: 0, EndTime: 5, Text: "set the work offset"},
			{ID: "s2", StartTime: 5, EndTime: 10, Text: "touch off the tool"},
			{ID: "s3", StartTime: 12, EndTime: 18, Text: "run the first pass"},
		},
	}
}
