package models

import (
	"time"

	"gorm.io/gorm"
)

// JobStatus represents the status of a reprocess job. The idle state exists
// only client-side (no job started); persisted jobs begin at queued.
type JobStatus string

const (
	JobStatusIdle       JobStatus = "idle"
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// IsTerminal returns true for the two terminal states
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// ReprocessJob is a server-side asynchronous video reprocessing task. Its
// lifecycle is entirely server-driven; editing sessions only observe it
// through polling.
type ReprocessJob struct {
	gorm.Model
	JobID       string     `json:"job_id" gorm:"uniqueIndex;not null"`
	ReelID      uint       `json:"-" gorm:"not null;index:idx_reprocess_jobs_reel_status"`
	ReelUUID    string     `json:"reel_id" gorm:"index"`
	Status      JobStatus  `json:"status" gorm:"default:'queued';index:idx_reprocess_jobs_reel_status"`
	Progress    int        `json:"progress" gorm:"default:0"` // 0-100
	Message     string     `json:"message,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
	WorkerID    string     `json:"worker_id,omitempty"`
}

// TableName specifies the table name for ReprocessJob
func (ReprocessJob) TableName() string {
	return "reprocess_jobs"
}

// IsTerminal returns true if the job has reached a terminal state
func (j *ReprocessJob) IsTerminal() bool {
	return j.Status.IsTerminal()
}

// StatusRecord converts the job to its wire representation
func (j *ReprocessJob) StatusRecord() *ReprocessStatus {
	rec := &ReprocessStatus{
		JobID:       j.JobID,
		Status:      j.Status,
		Message:     j.Message,
		StartedAt:   j.StartedAt,
		CompletedAt: j.CompletedAt,
		Error:       j.Error,
	}
	progress := j.Progress
	rec.Progress = &progress
	return rec
}

// ReprocessStatus is the polling response shape for a reprocess job
type ReprocessStatus struct {
	JobID       string     `json:"job_id"`
	Status      JobStatus  `json:"status"`
	Progress    *int       `json:"progress,omitempty"`
	Message     string     `json:"message,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}
