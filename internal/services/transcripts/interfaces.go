package transcripts

import (
	"context"

	"github.com/reelworks/reel-api/internal/models"
)

// TranscriptService defines the business logic interface for transcripts
type TranscriptService interface {
	CreateTranscript(ctx context.Context, transcript *models.Transcript) error
	GetTranscript(ctx context.Context, reelUUID string) (*models.Transcript, error)

	// ReplaceSegments swaps in a full replacement segment list, bumping the
	// transcript version counter. The replacement must satisfy the ordering
	// and non-overlap invariants.
	ReplaceSegments(ctx context.Context, reelUUID string, segments models.SegmentList, changeNote, updatedBy string) (*models.Transcript, error)
}

// TranscriptRepository defines the persistence interface for transcripts
type TranscriptRepository interface {
	Create(ctx context.Context, transcript *models.Transcript) error
	GetByReelUUID(ctx context.Context, reelUUID string) (*models.Transcript, error)
	ReplaceSegments(ctx context.Context, transcriptID uint, segments models.SegmentList, newVersion int, updatedBy string) error
}
