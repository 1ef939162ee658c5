package transcripts

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/reelworks/reel-api/internal/models"
)

// Repository errors
var ErrTranscriptNotFound = errors.New("transcript not found")

type Repository struct {
	db *gorm.DB
}

// Ensure Repository implements TranscriptRepository interface
var _ TranscriptRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, transcript *models.Transcript) error {
	if err := r.db.WithContext(ctx).Create(transcript).Error; err != nil {
		return fmt.Errorf("creating transcript: %w", err)
	}
	return nil
}

func (r *Repository) GetByReelUUID(ctx context.Context, reelUUID string) (*models.Transcript, error) {
	var transcript models.Transcript
	if err := r.db.WithContext(ctx).Where("reel_uuid = ?", reelUUID).First(&transcript).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTranscriptNotFound
		}
		return nil, fmt.Errorf("getting transcript: %w", err)
	}
	return &transcript, nil
}

func (r *Repository) ReplaceSegments(ctx context.Context, transcriptID uint, segments models.SegmentList, newVersion int, updatedBy string) error {
	result := r.db.WithContext(ctx).Model(&models.Transcript{}).
		Where("id = ?", transcriptID).
		Updates(map[string]interface{}{
			"segments":   segments,
			"version":    newVersion,
			"updated_by": updatedBy,
		})
	if result.Error != nil {
		return fmt.Errorf("replacing segments: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTranscriptNotFound
	}
	return nil
}
