package reels

import (
	"context"

	"github.com/reelworks/reel-api/internal/models"
)

// ReelService defines the business logic interface for reel metadata,
// revision history, and rollback
type ReelService interface {
	CreateReel(ctx context.Context, reel *models.Reel, authorName string) error
	GetReel(ctx context.Context, reelUUID string) (*models.Reel, error)

	// CommitMetadata validates and applies a partial metadata update,
	// allocates the next version number, and appends a snapshot of the
	// resulting state. expectedVersion is the caller's view of the reel's
	// current version; a mismatch fails with a conflict error.
	CommitMetadata(ctx context.Context, reelUUID string, patch models.MetadataPatch, expectedVersion int, commit CommitInfo) (*models.Reel, *models.ReelVersion, error)

	// Rollback appends a new version whose snapshot equals the target
	// version's snapshot. History is never rewritten.
	Rollback(ctx context.Context, reelUUID string, versionUUID string, commit CommitInfo) (*models.Reel, *models.ReelVersion, error)

	// ListVersions returns the full history ordered by version number
	// ascending, with rollback eligibility computed per version.
	ListVersions(ctx context.Context, reelUUID string) ([]models.ReelVersion, error)

	// RefreshVideoAttributes updates server-derived video fields after a
	// reprocess job completes. Does not create a version.
	RefreshVideoAttributes(ctx context.Context, reelID uint, durationSeconds int, thumbnailURL string) error
}

// CommitInfo carries who made a change and why
type CommitInfo struct {
	Author     string
	AuthorName string
	ChangeNote string
}

// ReelRepository defines the persistence interface for reels and versions
type ReelRepository interface {
	CreateReel(ctx context.Context, reel *models.Reel, initial *models.ReelVersion) error
	GetReelByUUID(ctx context.Context, reelUUID string) (*models.Reel, error)
	GetVersionByUUID(ctx context.Context, versionUUID string) (*models.ReelVersion, error)
	ListVersions(ctx context.Context, reelID uint) ([]models.ReelVersion, error)

	// CommitVersion persists the updated reel and appends the new version in
	// one transaction. prevVersion guards against concurrent writers at the
	// storage layer.
	CommitVersion(ctx context.Context, reel *models.Reel, prevVersion int, version *models.ReelVersion) error

	UpdateVideoAttributes(ctx context.Context, reelID uint, durationSeconds int, thumbnailURL string) error
}
