package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/reelworks/reel-api/internal/models"
)

// Repository errors
var (
	ErrJobNotFound     = errors.New("job not found")
	ErrNoJobsAvailable = errors.New("no jobs available")
	ErrActiveJobExists = errors.New("active job exists for reel")
)

// repository implements Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new reprocess job repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// EnqueueJob creates a queued job for the reel unless one is already queued
// or processing. Running the existence check and the insert in one
// transaction keeps two concurrent enqueues from both passing the check.
func (r *repository) EnqueueJob(ctx context.Context, job *models.ReprocessJob) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ReprocessJob{}).
			Where("reel_id = ? AND status IN ?", job.ReelID, []models.JobStatus{models.JobStatusQueued, models.JobStatusProcessing}).
			Count(&count).Error; err != nil {
			return fmt.Errorf("checking active job: %w", err)
		}
		if count > 0 {
			return ErrActiveJobExists
		}
		return tx.Create(job).Error
	})
}

func (r *repository) GetJobByJobID(ctx context.Context, jobID string) (*models.ReprocessJob, error) {
	var job models.ReprocessJob
	err := r.db.WithContext(ctx).Where("job_id = ?", jobID).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("getting job: %w", err)
	}
	return &job, nil
}

// ClaimNextQueued atomically claims the oldest queued job for a worker
func (r *repository) ClaimNextQueued(ctx context.Context, workerID string) (*models.ReprocessJob, error) {
	var claimed *models.ReprocessJob

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job models.ReprocessJob
		if err := tx.Where("status = ?", models.JobStatusQueued).
			Order("created_at ASC").
			First(&job).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoJobsAvailable
			}
			return fmt.Errorf("finding queued job: %w", err)
		}

		now := time.Now().UTC()
		result := tx.Model(&models.ReprocessJob{}).
			Where("id = ? AND status = ?", job.ID, models.JobStatusQueued).
			Updates(map[string]interface{}{
				"status":     models.JobStatusProcessing,
				"worker_id":  workerID,
				"started_at": now,
			})
		if result.Error != nil {
			return fmt.Errorf("claiming job: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// Another worker got there first.
			return ErrNoJobsAvailable
		}

		job.Status = models.JobStatusProcessing
		job.WorkerID = workerID
		job.StartedAt = &now
		claimed = &job
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *repository) UpdateProgress(ctx context.Context, jobID string, progress int, message string) error {
	updates := map[string]interface{}{"progress": progress}
	if message != "" {
		updates["message"] = message
	}
	result := r.db.WithContext(ctx).Model(&models.ReprocessJob{}).
		Where("job_id = ?", jobID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("updating progress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *repository) CompleteJob(ctx context.Context, jobID string, message string) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&models.ReprocessJob{}).
		Where("job_id = ?", jobID).
		Updates(map[string]interface{}{
			"status":       models.JobStatusCompleted,
			"progress":     100,
			"message":      message,
			"completed_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("completing job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *repository) FailJob(ctx context.Context, jobID string, errMsg string) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&models.ReprocessJob{}).
		Where("job_id = ?", jobID).
		Updates(map[string]interface{}{
			"status":       models.JobStatusFailed,
			"error":        errMsg,
			"message":      errMsg,
			"completed_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failing job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}
