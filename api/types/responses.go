package types

import "github.com/reelworks/reel-api/internal/models"

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`            // One of the Status constants above
	Message string `json:"message,omitempty"` // Human-readable message
}

// ReelResponse for single-reel endpoints
type ReelResponse struct {
	BaseResponse
	Reel *models.Reel `json:"reel"`
}

// VersionsResponse for the revision history endpoint. Versions are ordered
// by version number ascending; consumers may re-sort for display.
type VersionsResponse struct {
	BaseResponse
	Versions []models.ReelVersion `json:"versions"`
	Count    int                  `json:"count"`
}

// TranscriptResponse for transcript endpoints
type TranscriptResponse struct {
	BaseResponse
	Transcript *models.Transcript `json:"transcript"`
}

// ReprocessAcceptedResponse acknowledges a reprocess request
type ReprocessAcceptedResponse struct {
	BaseResponse
	JobID string `json:"job_id"`
}

// ReprocessStatusResponse for the job polling endpoint
type ReprocessStatusResponse struct {
	BaseResponse
	Job *models.ReprocessStatus `json:"job"`
}

// ErrorResponse for detailed error information. Code carries the structured
// error code so clients can rebuild the typed error.
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
