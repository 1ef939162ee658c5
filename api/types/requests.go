package types

import "github.com/reelworks/reel-api/internal/models"

// UpdateMetadataRequest is the body of PATCH /api/v1/reels/:id. The embedded
// patch fields are all optional; expected_version carries the caller's view
// of the reel's current version for stale-write detection.
type UpdateMetadataRequest struct {
	models.MetadataPatch
	ExpectedVersion int    `json:"expected_version" binding:"required"`
	ChangeNote      string `json:"changes_description"`
	ChangedBy       string `json:"changed_by"`
	ChangedByName   string `json:"changed_by_name"`
}

// RollbackRequest is the body of POST /api/v1/reels/:id/versions/:versionId/rollback
type RollbackRequest struct {
	ChangedBy     string `json:"changed_by"`
	ChangedByName string `json:"changed_by_name"`
}

// ReplaceTranscriptRequest is the body of PUT /api/v1/reels/:id/transcript.
// The segment list replaces the stored transcript wholesale.
type ReplaceTranscriptRequest struct {
	Segments   models.SegmentList `json:"segments" binding:"required"`
	ChangeNote string             `json:"change_note"`
	UpdatedBy  string             `json:"updated_by"`
}

// CreateReelRequest is the body of POST /api/v1/reels
type CreateReelRequest struct {
	Title        string             `json:"title" binding:"required"`
	Description  string             `json:"description"`
	Tags         models.StringList  `json:"tags"`
	Category     string             `json:"category"`
	Machine      string             `json:"machine"`
	Tooling      string             `json:"tooling"`
	ProcessStep  string             `json:"process_step"`
	SkillLevel   models.SkillLevel  `json:"skill_level"`
	Language     string             `json:"language"`
	Visibility   models.Visibility  `json:"visibility"`
	VideoURL     string             `json:"video_url"`
	UploaderID   string             `json:"uploader_id"`
	UploaderName string             `json:"uploader_name"`
	Segments     models.SegmentList `json:"segments"`
}
