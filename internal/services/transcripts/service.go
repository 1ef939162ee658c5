package transcripts

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/reelworks/reel-api/internal/models"
	apperrors "github.com/reelworks/reel-api/pkg/errors"
)

// Service implements the TranscriptService interface
type Service struct {
	repository TranscriptRepository
}

// Ensure Service implements TranscriptService interface
var _ TranscriptService = (*Service)(nil)

// NewService creates a new transcript service
func NewService(repository TranscriptRepository) *Service {
	return &Service{repository: repository}
}

// CreateTranscript persists a freshly produced transcript for a reel
func (s *Service) CreateTranscript(ctx context.Context, transcript *models.Transcript) error {
	if transcript.ReelUUID == "" {
		return apperrors.MissingField("reel_id")
	}
	if err := transcript.Segments.Validate(); err != nil {
		return apperrors.New(apperrors.ErrCodeValidation, err.Error())
	}
	if transcript.UUID == "" {
		transcript.UUID = uuid.New().String()
	}
	if transcript.Version == 0 {
		transcript.Version = 1
	}

	if err := s.repository.Create(ctx, transcript); err != nil {
		return apperrors.DatabaseError("create transcript", err)
	}
	return nil
}

// GetTranscript fetches the transcript attached to a reel
func (s *Service) GetTranscript(ctx context.Context, reelUUID string) (*models.Transcript, error) {
	transcript, err := s.repository.GetByReelUUID(ctx, reelUUID)
	if err != nil {
		if errors.Is(err, ErrTranscriptNotFound) {
			return nil, apperrors.NotFound("transcript", reelUUID)
		}
		return nil, apperrors.DatabaseError("get transcript", err)
	}
	return transcript, nil
}

// ReplaceSegments replaces the transcript's full segment list and bumps its
// version counter. Invalid segment ranges are rejected rather than stored.
func (s *Service) ReplaceSegments(ctx context.Context, reelUUID string, segments models.SegmentList, changeNote, updatedBy string) (*models.Transcript, error) {
	if len(segments) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "segment list must not be empty")
	}
	if err := segments.Validate(); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeValidation, err.Error())
	}

	transcript, err := s.repository.GetByReelUUID(ctx, reelUUID)
	if err != nil {
		if errors.Is(err, ErrTranscriptNotFound) {
			return nil, apperrors.NotFound("transcript", reelUUID)
		}
		return nil, apperrors.DatabaseError("get transcript", err)
	}

	newVersion := transcript.Version + 1
	if err := s.repository.ReplaceSegments(ctx, transcript.ID, segments, newVersion, updatedBy); err != nil {
		if errors.Is(err, ErrTranscriptNotFound) {
			return nil, apperrors.NotFound("transcript", reelUUID)
		}
		return nil, apperrors.DatabaseError("replace segments", err)
	}

	transcript.Segments = segments
	transcript.Version = newVersion
	transcript.UpdatedBy = updatedBy

	if changeNote != "" {
		log.Printf("[DEBUG] Transcript for reel %s replaced at version %d: %s", reelUUID, newVersion, changeNote)
	} else {
		log.Printf("[DEBUG] Transcript for reel %s replaced at version %d", reelUUID, newVersion)
	}
	return transcript, nil
}
