package jobs

import (
	"context"

	"github.com/reelworks/reel-api/internal/models"
)

// Service defines the business logic interface for reprocess jobs
type Service interface {
	// StartReprocess enqueues a reprocess job for a reel. At most one
	// non-terminal job may exist per reel at a time.
	StartReprocess(ctx context.Context, reel *models.Reel) (*models.ReprocessJob, error)

	// GetStatus returns the polling record for a job
	GetStatus(ctx context.Context, jobID string) (*models.ReprocessStatus, error)

	// Worker operations
	ClaimNextJob(ctx context.Context, workerID string) (*models.ReprocessJob, error)
	UpdateProgress(ctx context.Context, jobID string, progress int, message string) error
	CompleteJob(ctx context.Context, jobID string, message string) error
	FailJob(ctx context.Context, jobID string, errMsg string) error
}

// Repository defines the persistence interface for reprocess jobs
type Repository interface {
	// EnqueueJob creates a queued job unless the reel already has a queued
	// or processing one. The check and the insert share a transaction;
	// ErrActiveJobExists reports a lost race.
	EnqueueJob(ctx context.Context, job *models.ReprocessJob) error

	GetJobByJobID(ctx context.Context, jobID string) (*models.ReprocessJob, error)
	ClaimNextQueued(ctx context.Context, workerID string) (*models.ReprocessJob, error)
	UpdateProgress(ctx context.Context, jobID string, progress int, message string) error
	CompleteJob(ctx context.Context, jobID string, message string) error
	FailJob(ctx context.Context, jobID string, errMsg string) error
}
