package transcripts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reelworks/reel-api/internal/models"
	apperrors "github.com/reelworks/reel-api/pkg/errors"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, transcript *models.Transcript) error {
	args := m.Called(ctx, transcript)
	return args.Error(0)
}

func (m *MockRepository) GetByReelUUID(ctx context.Context, reelUUID string) (*models.Transcript, error) {
	args := m.Called(ctx, reelUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transcript), args.Error(1)
}

func (m *MockRepository) ReplaceSegments(ctx context.Context, transcriptID uint, segments models.SegmentList, newVersion int, updatedBy string) error {
	args := m.Called(ctx, transcriptID, segments, newVersion, updatedBy)
	return args.Error(0)
}

func validSegments() models.SegmentList {
	return models.SegmentList{
		{ID: "s1", StartTime: 0, EndTime: 4, Text: "clamp the stock"},
		{ID: "s2", StartTime: 4, EndTime: 9, Text: "zero the spindle"},
	}
}

func storedTranscript(version int) *models.Transcript {
	tr := &models.Transcript{
		UUID:     "tr-1",
		ReelUUID: "reel-1",
		Version:  version,
		Segments: validSegments(),
	}
	tr.ID = 3
	return tr
}

func TestCreateTranscript(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	tr := &models.Transcript{ReelUUID: "reel-1", Segments: validSegments()}
	require.NoError(t, service.CreateTranscript(context.Background(), tr))

	assert.NotEmpty(t, tr.UUID)
	assert.Equal(t, 1, tr.Version)
}

func TestCreateTranscript_RequiresReel(t *testing.T) {
	service := NewService(new(MockRepository))

	err := service.CreateTranscript(context.Background(), &models.Transcript{Segments: validSegments()})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeMissingField))
}

func TestReplaceSegments(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("GetByReelUUID", mock.Anything, "reel-1").Return(storedTranscript(1), nil)
	repo.On("ReplaceSegments", mock.Anything, uint(3), mock.Anything, 2, "alex").Return(nil)

	replacement := models.SegmentList{
		{ID: "s1", StartTime: 0, EndTime: 5, Text: "clamp the stock firmly"},
		{ID: "s2", StartTime: 5, EndTime: 9, Text: "zero the spindle"},
	}

	updated, err := service.ReplaceSegments(context.Background(), "reel-1", replacement, "tightened wording", "alex")
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "alex", updated.UpdatedBy)
	assert.Equal(t, "clamp the stock firmly", updated.Segments[0].Text)
	repo.AssertExpectations(t)
}

func TestReplaceSegments_RejectsInvalidRanges(t *testing.T) {
	tests := []struct {
		name     string
		segments models.SegmentList
	}{
		{
			name:     "empty list",
			segments: models.SegmentList{},
		},
		{
			name: "start not before end",
			segments: models.SegmentList{
				{ID: "s1", StartTime: 5, EndTime: 5, Text: "x"},
			},
		},
		{
			name: "negative start",
			segments: models.SegmentList{
				{ID: "s1", StartTime: -1, EndTime: 5, Text: "x"},
			},
		},
		{
			name: "overlapping neighbors",
			segments: models.SegmentList{
				{ID: "s1", StartTime: 0, EndTime: 6, Text: "x"},
				{ID: "s2", StartTime: 5, EndTime: 9, Text: "y"},
			},
		},
		{
			name: "out of order",
			segments: models.SegmentList{
				{ID: "s2", StartTime: 5, EndTime: 9, Text: "y"},
				{ID: "s1", StartTime: 0, EndTime: 4, Text: "x"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			service := NewService(repo)

			_, err := service.ReplaceSegments(context.Background(), "reel-1", tt.segments, "", "")
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
			repo.AssertNotCalled(t, "ReplaceSegments", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReplaceSegments_TranscriptNotFound(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("GetByReelUUID", mock.Anything, "missing").Return(nil, ErrTranscriptNotFound)

	_, err := service.ReplaceSegments(context.Background(), "missing", validSegments(), "", "")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestGetTranscript_NotFound(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("GetByReelUUID", mock.Anything, "missing").Return(nil, ErrTranscriptNotFound)

	_, err := service.GetTranscript(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}
