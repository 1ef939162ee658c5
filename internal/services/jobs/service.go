package jobs

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/reelworks/reel-api/internal/models"
	apperrors "github.com/reelworks/reel-api/pkg/errors"
)

type service struct {
	repo Repository
}

// NewService creates a new reprocess job service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) StartReprocess(ctx context.Context, reel *models.Reel) (*models.ReprocessJob, error) {
	job := &models.ReprocessJob{
		JobID:    uuid.New().String(),
		ReelID:   reel.ID,
		ReelUUID: reel.UUID,
		Status:   models.JobStatusQueued,
		Message:  "Queued for reprocessing",
	}

	if err := s.repo.EnqueueJob(ctx, job); err != nil {
		if errors.Is(err, ErrActiveJobExists) {
			return nil, apperrors.AlreadyRunning(reel.UUID)
		}
		return nil, apperrors.DatabaseError("enqueue job", err)
	}

	log.Printf("[DEBUG] Enqueued reprocess job %s for reel %s", job.JobID, reel.UUID)
	return job, nil
}

func (s *service) GetStatus(ctx context.Context, jobID string) (*models.ReprocessStatus, error) {
	job, err := s.repo.GetJobByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return nil, apperrors.NotFound("reprocess job", jobID)
		}
		return nil, apperrors.DatabaseError("get job", err)
	}
	return job.StatusRecord(), nil
}

func (s *service) ClaimNextJob(ctx context.Context, workerID string) (*models.ReprocessJob, error) {
	job, err := s.repo.ClaimNextQueued(ctx, workerID)
	if err != nil {
		if errors.Is(err, ErrNoJobsAvailable) {
			return nil, err
		}
		return nil, apperrors.DatabaseError("claim job", err)
	}

	log.Printf("[DEBUG] Worker %s claimed reprocess job %s", workerID, job.JobID)
	return job, nil
}

func (s *service) UpdateProgress(ctx context.Context, jobID string, progress int, message string) error {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	if err := s.repo.UpdateProgress(ctx, jobID, progress, message); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return apperrors.NotFound("reprocess job", jobID)
		}
		return apperrors.DatabaseError("update progress", err)
	}

	if progress%10 == 0 || progress == 100 {
		log.Printf("[DEBUG] Job %s progress: %d%%", jobID, progress)
	}
	return nil
}

func (s *service) CompleteJob(ctx context.Context, jobID string, message string) error {
	if err := s.repo.CompleteJob(ctx, jobID, message); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return apperrors.NotFound("reprocess job", jobID)
		}
		return apperrors.DatabaseError("complete job", err)
	}

	log.Printf("[DEBUG] Job %s completed", jobID)
	return nil
}

func (s *service) FailJob(ctx context.Context, jobID string, errMsg string) error {
	if err := s.repo.FailJob(ctx, jobID, errMsg); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return apperrors.NotFound("reprocess job", jobID)
		}
		return apperrors.DatabaseError("fail job", err)
	}

	log.Printf("[ERROR] Job %s failed: %s", jobID, errMsg)
	return nil
}
