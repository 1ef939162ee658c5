package reels

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/reelworks/reel-api/internal/models"
)

type Repository struct {
	db *gorm.DB
}

// Ensure Repository implements ReelRepository interface
var _ ReelRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateReel(ctx context.Context, reel *models.Reel, initial *models.ReelVersion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reel).Error; err != nil {
			return fmt.Errorf("creating reel: %w", err)
		}
		initial.ReelID = reel.ID
		initial.ReelUUID = reel.UUID
		if err := tx.Create(initial).Error; err != nil {
			return fmt.Errorf("creating initial version: %w", err)
		}
		return nil
	})
}

func (r *Repository) GetReelByUUID(ctx context.Context, reelUUID string) (*models.Reel, error) {
	var reel models.Reel
	if err := r.db.WithContext(ctx).Where("uuid = ?", reelUUID).First(&reel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReelNotFound
		}
		return nil, fmt.Errorf("getting reel: %w", err)
	}
	return &reel, nil
}

func (r *Repository) GetVersionByUUID(ctx context.Context, versionUUID string) (*models.ReelVersion, error) {
	var version models.ReelVersion
	if err := r.db.WithContext(ctx).Where("uuid = ?", versionUUID).First(&version).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("getting version: %w", err)
	}
	return &version, nil
}

func (r *Repository) ListVersions(ctx context.Context, reelID uint) ([]models.ReelVersion, error) {
	var versions []models.ReelVersion
	if err := r.db.WithContext(ctx).
		Where("reel_id = ?", reelID).
		Order("version ASC").
		Find(&versions).Error; err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	return versions, nil
}

// CommitVersion saves the reel and appends the version atomically. The
// update is fenced on prevVersion so a concurrent commit that advanced the
// reel first loses with ErrVersionConflict instead of clobbering it.
func (r *Repository) CommitVersion(ctx context.Context, reel *models.Reel, prevVersion int, version *models.ReelVersion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Reel{}).
			Where("id = ? AND current_version = ?", reel.ID, prevVersion).
			Updates(map[string]interface{}{
				"title":           reel.Title,
				"description":     reel.Description,
				"tags":            reel.Tags,
				"category":        reel.Category,
				"machine":         reel.Machine,
				"tooling":         reel.Tooling,
				"process_step":    reel.ProcessStep,
				"skill_level":     reel.SkillLevel,
				"language":        reel.Language,
				"visibility":      reel.Visibility,
				"status":          reel.Status,
				"current_version": reel.CurrentVersion,
			})
		if result.Error != nil {
			return fmt.Errorf("updating reel: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrVersionConflict
		}

		version.ReelID = reel.ID
		version.ReelUUID = reel.UUID
		if err := tx.Create(version).Error; err != nil {
			return fmt.Errorf("appending version: %w", err)
		}
		return nil
	})
}

func (r *Repository) UpdateVideoAttributes(ctx context.Context, reelID uint, durationSeconds int, thumbnailURL string) error {
	updates := map[string]interface{}{}
	if durationSeconds > 0 {
		updates["duration"] = durationSeconds
	}
	if thumbnailURL != "" {
		updates["thumbnail_url"] = thumbnailURL
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&models.Reel{}).Where("id = ?", reelID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("updating video attributes: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReelNotFound
	}
	return nil
}
