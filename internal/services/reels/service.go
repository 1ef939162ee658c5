package reels

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/reelworks/reel-api/internal/models"
	apperrors "github.com/reelworks/reel-api/pkg/errors"
)

const defaultChangeNote = "Updated metadata"

// Service implements the ReelService interface with business logic
type Service struct {
	repository ReelRepository
}

// Ensure Service implements ReelService interface
var _ ReelService = (*Service)(nil)

// NewService creates a new reel service
func NewService(repository ReelRepository) *Service {
	return &Service{repository: repository}
}

// CreateReel persists a new reel together with its initial version record
func (s *Service) CreateReel(ctx context.Context, reel *models.Reel, authorName string) error {
	if reel.Title == "" {
		return apperrors.MissingField("title")
	}
	if reel.UUID == "" {
		reel.UUID = uuid.New().String()
	}
	if reel.Visibility == "" {
		reel.Visibility = models.VisibilityTenant
	}
	if reel.Status == "" {
		reel.Status = models.ReelStatusDraft
	}
	reel.CurrentVersion = 1

	initial := &models.ReelVersion{
		UUID:       uuid.New().String(),
		Version:    1,
		ChangeNote: "Initial version",
		Author:     reel.UploaderID,
		AuthorName: authorName,
		Snapshot:   models.SnapshotOf(reel),
	}

	if err := s.repository.CreateReel(ctx, reel, initial); err != nil {
		return apperrors.DatabaseError("create reel", err)
	}

	log.Printf("[DEBUG] Created reel %s at version 1", reel.UUID)
	return nil
}

// GetReel fetches a reel by its public identifier
func (s *Service) GetReel(ctx context.Context, reelUUID string) (*models.Reel, error) {
	reel, err := s.repository.GetReelByUUID(ctx, reelUUID)
	if err != nil {
		if errors.Is(err, ErrReelNotFound) {
			return nil, apperrors.NotFound("reel", reelUUID)
		}
		return nil, apperrors.DatabaseError("get reel", err)
	}
	return reel, nil
}

// CommitMetadata applies a validated metadata patch and appends a version
// snapshot of the resulting state
func (s *Service) CommitMetadata(ctx context.Context, reelUUID string, patch models.MetadataPatch, expectedVersion int, commit CommitInfo) (*models.Reel, *models.ReelVersion, error) {
	if patch.IsEmpty() {
		return nil, nil, apperrors.New(apperrors.ErrCodeValidation, "metadata patch contains no fields")
	}
	if err := patch.Validate(); err != nil {
		return nil, nil, apperrors.New(apperrors.ErrCodeValidation, err.Error())
	}

	reel, err := s.repository.GetReelByUUID(ctx, reelUUID)
	if err != nil {
		if errors.Is(err, ErrReelNotFound) {
			return nil, nil, apperrors.NotFound("reel", reelUUID)
		}
		return nil, nil, apperrors.DatabaseError("get reel", err)
	}

	if expectedVersion != reel.CurrentVersion {
		return nil, nil, apperrors.Conflict(expectedVersion, reel.CurrentVersion)
	}

	prevVersion := reel.CurrentVersion
	patch.Apply(reel)
	reel.CurrentVersion = prevVersion + 1

	note := commit.ChangeNote
	if note == "" {
		note = defaultChangeNote
	}

	version := &models.ReelVersion{
		UUID:       uuid.New().String(),
		Version:    reel.CurrentVersion,
		ChangeNote: note,
		Author:     commit.Author,
		AuthorName: commit.AuthorName,
		// The snapshot records what the reel looks like after the patch.
		Snapshot: models.SnapshotOf(reel),
	}

	if err := s.repository.CommitVersion(ctx, reel, prevVersion, version); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return nil, nil, apperrors.Conflict(expectedVersion, reel.CurrentVersion)
		}
		return nil, nil, apperrors.DatabaseError("commit metadata", err)
	}

	log.Printf("[DEBUG] Reel %s advanced to version %d (%s)", reel.UUID, reel.CurrentVersion, note)
	return reel, version, nil
}

// Rollback restores an older snapshot by appending a new version. The
// pre-rollback history stays fully intact.
func (s *Service) Rollback(ctx context.Context, reelUUID string, versionUUID string, commit CommitInfo) (*models.Reel, *models.ReelVersion, error) {
	reel, err := s.repository.GetReelByUUID(ctx, reelUUID)
	if err != nil {
		if errors.Is(err, ErrReelNotFound) {
			return nil, nil, apperrors.NotFound("reel", reelUUID)
		}
		return nil, nil, apperrors.DatabaseError("get reel", err)
	}

	target, err := s.repository.GetVersionByUUID(ctx, versionUUID)
	if err != nil {
		if errors.Is(err, ErrVersionNotFound) {
			return nil, nil, apperrors.NotFound("version", versionUUID)
		}
		return nil, nil, apperrors.DatabaseError("get version", err)
	}
	if target.ReelID != reel.ID {
		return nil, nil, apperrors.NotFound("version", versionUUID)
	}

	if target.Version == reel.CurrentVersion {
		return nil, nil, apperrors.RollbackDenied(versionUUID, "target is the current version")
	}
	if target.Locked {
		return nil, nil, apperrors.RollbackDenied(versionUUID, "version is locked")
	}

	prevVersion := reel.CurrentVersion
	target.Snapshot.Restore(reel)
	reel.CurrentVersion = prevVersion + 1

	version := &models.ReelVersion{
		UUID:       uuid.New().String(),
		Version:    reel.CurrentVersion,
		ChangeNote: fmt.Sprintf("Rolled back to version %d", target.Version),
		Author:     commit.Author,
		AuthorName: commit.AuthorName,
		Snapshot:   target.Snapshot,
	}

	if err := s.repository.CommitVersion(ctx, reel, prevVersion, version); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return nil, nil, apperrors.Conflict(prevVersion, reel.CurrentVersion)
		}
		return nil, nil, apperrors.DatabaseError("rollback", err)
	}

	log.Printf("[INFO] Reel %s rolled back to version %d as version %d", reel.UUID, target.Version, reel.CurrentVersion)
	return reel, version, nil
}

// ListVersions returns the append-only history ordered by version ascending
func (s *Service) ListVersions(ctx context.Context, reelUUID string) ([]models.ReelVersion, error) {
	reel, err := s.repository.GetReelByUUID(ctx, reelUUID)
	if err != nil {
		if errors.Is(err, ErrReelNotFound) {
			return nil, apperrors.NotFound("reel", reelUUID)
		}
		return nil, apperrors.DatabaseError("get reel", err)
	}

	versions, err := s.repository.ListVersions(ctx, reel.ID)
	if err != nil {
		return nil, apperrors.DatabaseError("list versions", err)
	}

	for i := range versions {
		versions[i].CanRollback = versions[i].Version != reel.CurrentVersion && !versions[i].Locked
	}
	return versions, nil
}

// RefreshVideoAttributes writes reprocessing-derived video fields
func (s *Service) RefreshVideoAttributes(ctx context.Context, reelID uint, durationSeconds int, thumbnailURL string) error {
	if err := s.repository.UpdateVideoAttributes(ctx, reelID, durationSeconds, thumbnailURL); err != nil {
		if errors.Is(err, ErrReelNotFound) {
			return apperrors.NotFound("reel", reelID)
		}
		return apperrors.DatabaseError("refresh video attributes", err)
	}
	return nil
}
