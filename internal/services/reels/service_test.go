package reels

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reelworks/reel-api/internal/models"
	apperrors "github.com/reelworks/reel-api/pkg/errors"
)

// Mock implementations for testing

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateReel(ctx context.Context, reel *models.Reel, initial *models.ReelVersion) error {
	args := m.Called(ctx, reel, initial)
	return args.Error(0)
}

func (m *MockRepository) GetReelByUUID(ctx context.Context, reelUUID string) (*models.Reel, error) {
	args := m.Called(ctx, reelUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reel), args.Error(1)
}

func (m *MockRepository) GetVersionByUUID(ctx context.Context, versionUUID string) (*models.ReelVersion, error) {
	args := m.Called(ctx, versionUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReelVersion), args.Error(1)
}

func (m *MockRepository) ListVersions(ctx context.Context, reelID uint) ([]models.ReelVersion, error) {
	args := m.Called(ctx, reelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReelVersion), args.Error(1)
}

func (m *MockRepository) CommitVersion(ctx context.Context, reel *models.Reel, prevVersion int, version *models.ReelVersion) error {
	args := m.Called(ctx, reel, prevVersion, version)
	return args.Error(0)
}

func (m *MockRepository) UpdateVideoAttributes(ctx context.Context, reelID uint, durationSeconds int, thumbnailURL string) error {
	args := m.Called(ctx, reelID, durationSeconds, thumbnailURL)
	return args.Error(0)
}

func storedReel(version int) *models.Reel {
	r := &models.Reel{
		UUID:        "reel-1",
		Title:       "Facing an aluminium blank",
		Description: "First facing pass on the DMG",
		Machine:     "DMG MORI CMX 600",
		SkillLevel:  models.SkillBeginner,
		Visibility:  models.VisibilityTenant,
		Status:      models.ReelStatusDraft,

		CurrentVersion: version,
	}
	r.ID = 7
	return r
}

func TestCreateReel(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("CreateReel", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	reel := &models.Reel{Title: "Deburring basics", UploaderID: "user-1"}
	err := service.CreateReel(context.Background(), reel, "Alex")
	require.NoError(t, err)

	assert.NotEmpty(t, reel.UUID)
	assert.Equal(t, 1, reel.CurrentVersion)
	assert.Equal(t, models.VisibilityTenant, reel.Visibility)
	assert.Equal(t, models.ReelStatusDraft, reel.Status)

	initial := repo.Calls[0].Arguments.Get(2).(*models.ReelVersion)
	assert.Equal(t, 1, initial.Version)
	assert.Equal(t, "Initial version", initial.ChangeNote)
	assert.Equal(t, "Alex", initial.AuthorName)
	assert.Equal(t, "Deburring basics", initial.Snapshot.Title)
}

func TestCreateReel_RequiresTitle(t *testing.T) {
	service := NewService(new(MockRepository))

	err := service.CreateReel(context.Background(), &models.Reel{}, "")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeMissingField))
}

func TestCommitMetadata(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("GetReelByUUID", mock.Anything, "reel-1").Return(storedReel(3), nil)
	repo.On("CommitVersion", mock.Anything, mock.Anything, 3, mock.Anything).Return(nil)

	title := "Facing, corrected feeds"
	reel, version, err := service.CommitMetadata(
		context.Background(),
		"reel-1",
		models.MetadataPatch{Title: &title},
		3,
		CommitInfo{Author: "user-1", AuthorName: "Alex", ChangeNote: "fixed feed rate callout"},
	)
	require.NoError(t, err)

	assert.Equal(t, 4, reel.CurrentVersion)
	assert.Equal(t, "Facing, corrected feeds", reel.Title)
	// Untouched fields survive the patch
	assert.Equal(t, "First facing pass on the DMG", reel.Description)

	assert.Equal(t, 4, version.Version)
	assert.Equal(t, "fixed feed rate callout", version.ChangeNote)
	// The snapshot records the state after the patch
	assert.Equal(t, "Facing, corrected feeds", version.Snapshot.Title)

	repo.AssertExpectations(t)
}

func TestCommitMetadata_DefaultChangeNote(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("GetReelByUUID", mock.Anything, "reel-1").Return(storedReel(1), nil)
	repo.On("CommitVersion", mock.Anything, mock.Anything, 1, mock.Anything).Return(nil)

	title := "retitled"
	_, version, err := service.CommitMetadata(context.Background(), "reel-1", models.MetadataPatch{Title: &title}, 1, CommitInfo{})
	require.NoError(t, err)
	assert.Equal(t, "Updated metadata", version.ChangeNote)
}

func TestCommitMetadata_StaleVersionConflict(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("GetReelByUUID", mock.Anything, "reel-1").Return(storedReel(4), nil)

	title := "stale edit"
	_, _, err := service.CommitMetadata(context.Background(), "reel-1", models.MetadataPatch{Title: &title}, 3, CommitInfo{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeConflict))

	// The store is never touched on a stale commit
	repo.AssertNotCalled(t, "CommitVersion", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCommitMetadata_EmptyPatch(t *testing.T) {
	service := NewService(new(MockRepository))

	_, _, err := service.CommitMetadata(context.Background(), "reel-1", models.MetadataPatch{}, 1, CommitInfo{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
}

func TestCommitMetadata_InvalidEnum(t *testing.T) {
	service := NewService(new(MockRepository))

	bad := models.SkillLevel("Wizard")
	_, _, err := service.CommitMetadata(context.Background(), "reel-1", models.MetadataPatch{SkillLevel: &bad}, 1, CommitInfo{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
}

func TestCommitMetadata_ReelNotFound(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("GetReelByUUID", mock.Anything, "missing").Return(nil, ErrReelNotFound)

	title := "x"
	_, _, err := service.CommitMetadata(context.Background(), "missing", models.MetadataPatch{Title: &title}, 1, CommitInfo{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestCommitMetadata_StorageFenceConflict(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("GetReelByUUID", mock.Anything, "reel-1").Return(storedReel(2), nil)
	repo.On("CommitVersion", mock.Anything, mock.Anything, 2, mock.Anything).Return(ErrVersionConflict)

	title := "raced"
	_, _, err := service.CommitMetadata(context.Background(), "reel-1", models.MetadataPatch{Title: &title}, 2, CommitInfo{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeConflict))
}

func TestRollback(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo)

	current := storedReel(5)
	target := &models.ReelVersion{
		UUID:    "ver-2",
		ReelID:  current.ID,
		Version: 2,
		Snapshot: models.ReelSnapshot{
			Title:       "Original title",
			Description: "Original description",
			SkillLevel:  models.SkillBeginner,
			Visibility:  models.VisibilityTenant,
			Status:      models.ReelStatusDraft,
		},
	}

	repo.On("GetReelByUUID", mock.Anything, "reel-1").Return(current, nil)
	repo.On("GetVersionByUUID", mock.Anything, "ver-2").Return(target, nil)
	repo.On("CommitVersion", mock.Anything, mock.Anything, 5, mock.Anything).Return(nil)

	reel, version, err := service.Rollback(context.Background(), "reel-1", "ver-2", CommitInfo{Author: "user-1"})
	require.NoError(t, err)

	// Rollback appends, it never rewrites
	assert.Equal(t, 6, reel.CurrentVersion)
	assert.Equal(t, "Original title", reel.Title)
	assert.Equal(t, "Original description", reel.Description)

	assert.Equal(t, 6, version.Version)
	assert.Equal(t, "Rolled back to version 2", version.ChangeNote)
	assert.Equal(t, target.Snapshot, version.Snapshot)

	repo.AssertExpectations(t)
}

func TestRollback_Denied(t *testing.T) {
	tests := []struct {
		name   string
		target *models.ReelVersion
	}{
		{
			name:   "target is the current version",
			target: &models.ReelVersion{UUID: "ver-5", ReelID: 7, Version: 5},
		},
		{
			name:   "target is locked",
			target: &models.ReelVersion{UUID: "ver-2", ReelID: 7, Version: 2, Locked: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			service := NewService(repo)

			repo.On("GetReelByUUID", mock.Anything, "reel-1").Return(storedReel(5), nil)
			repo.On("GetVersionByUUID", mock.Anything, tt.target.UUID).Return(tt.target, nil)

			_, _, err := service.Rollback(context.Background(), "reel-1", tt.target.UUID, CommitInfo{})
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrCodeRollbackDenied))
			repo.AssertNotCalled(t, "CommitVersion", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRollback_VersionFromAnotherReel(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("GetReelByUUID", mock.Anything, "reel-1").Return(storedReel(5), nil)
	foreign := &models.ReelVersion{UUID: "ver-x", ReelID: 99, Version: 2}
	repo.On("GetVersionByUUID", mock.Anything, "ver-x").Return(foreign, nil)

	_, _, err := service.Rollback(context.Background(), "reel-1", "ver-x", CommitInfo{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestListVersions_ComputesRollbackEligibility(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo)

	reel := storedReel(3)
	repo.On("GetReelByUUID", mock.Anything, "reel-1").Return(reel, nil)
	repo.On("ListVersions", mock.Anything, reel.ID).Return([]models.ReelVersion{
		{Version: 1},
		{Version: 2, Locked: true},
		{Version: 3},
	}, nil)

	versions, err := service.ListVersions(context.Background(), "reel-1")
	require.NoError(t, err)
	require.Len(t, versions, 3)

	assert.True(t, versions[0].CanRollback, "older unlocked version is eligible")
	assert.False(t, versions[1].CanRollback, "locked version is never eligible")
	assert.False(t, versions[2].CanRollback, "current version is never eligible")
}

func TestRefreshVideoAttributes(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("UpdateVideoAttributes", mock.Anything, uint(7), 93, "https://cdn.example.com/t.jpg").Return(nil)

	err := service.RefreshVideoAttributes(context.Background(), 7, 93, "https://cdn.example.com/t.jpg")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
