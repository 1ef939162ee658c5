// Package session implements the client side of a reel editing session: a
// working transcript copy with dirty tracking, rollback-capable metadata
// commits, and a polling tracker for server-side reprocess jobs. All state
// is in memory; the API server remains the system of record.
package session

import (
	"context"

	"github.com/reelworks/reel-api/internal/models"
)

// Collaborator is the request/response boundary to the API server. Every
// method suspends at the network and may fail with a transport error or a
// domain error from the pkg/errors taxonomy; implementations must keep those
// two classes distinct.
type Collaborator interface {
	FetchReel(ctx context.Context, reelID string) (*models.Reel, error)

	// PatchMetadata commits a partial metadata update. expectedVersion is the
	// caller's view of the reel's current version; the server rejects stale
	// views with a conflict error.
	PatchMetadata(ctx context.Context, reelID string, patch models.MetadataPatch, expectedVersion int, changeNote string) (*models.Reel, error)

	FetchVersions(ctx context.Context, reelID string) ([]models.ReelVersion, error)
	RollbackToVersion(ctx context.Context, reelID, versionID string) (*models.Reel, error)

	StartReprocess(ctx context.Context, reelID string) (jobID string, err error)
	FetchReprocessStatus(ctx context.Context, reelID, jobID string) (*models.ReprocessStatus, error)

	FetchTranscript(ctx context.Context, reelID string) (*models.Transcript, error)
	ReplaceTranscript(ctx context.Context, reelID string, segments models.SegmentList, changeNote string) (*models.Transcript, error)
}
