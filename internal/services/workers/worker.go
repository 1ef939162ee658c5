package workers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/reelworks/reel-api/internal/models"
	"github.com/reelworks/reel-api/internal/services/jobs"
)

// Reprocessor performs the actual work for one claimed reprocess job,
// reporting progress through the callback. Returning an error marks the job
// failed.
type Reprocessor interface {
	Reprocess(ctx context.Context, job *models.ReprocessJob, report func(progress int, message string)) error
}

// Worker claims queued reprocess jobs and drives them to a terminal state
type Worker struct {
	id           string
	jobService   jobs.Service
	reprocessor  Reprocessor
	stopChan     chan struct{}
	wg           sync.WaitGroup
	pollInterval time.Duration
}

// NewWorker creates a new worker instance
func NewWorker(id string, jobService jobs.Service, reprocessor Reprocessor, pollInterval time.Duration) *Worker {
	return &Worker{
		id:           id,
		jobService:   jobService,
		reprocessor:  reprocessor,
		stopChan:     make(chan struct{}),
		pollInterval: pollInterval,
	}
}

// Start starts the worker in a goroutine
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.run(ctx)
}

// Stop stops the worker gracefully
func (w *Worker) Stop() {
	close(w.stopChan)
	w.wg.Wait()
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	log.Printf("Worker %s starting", w.id)
	defer log.Printf("Worker %s stopped", w.id)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-ticker.C:
			if err := w.processNextJob(ctx); err != nil {
				log.Printf("Worker %s: error processing job: %v", w.id, err)
			}
		}
	}
}

// processNextJob claims the next queued job and runs it to a terminal state
func (w *Worker) processNextJob(ctx context.Context) error {
	job, err := w.jobService.ClaimNextJob(ctx, w.id)
	if err != nil {
		if errors.Is(err, jobs.ErrNoJobsAvailable) {
			return nil
		}
		return err
	}

	log.Printf("Worker %s processing reprocess job %s (reel %s)", w.id, job.JobID, job.ReelUUID)

	report := func(progress int, message string) {
		if err := w.jobService.UpdateProgress(ctx, job.JobID, progress, message); err != nil {
			log.Printf("[ERROR] Worker %s: reporting progress for job %s: %v", w.id, job.JobID, err)
		}
	}

	if err := w.reprocessor.Reprocess(ctx, job, report); err != nil {
		if failErr := w.jobService.FailJob(ctx, job.JobID, err.Error()); failErr != nil {
			return fmt.Errorf("marking job %s failed: %w", job.JobID, failErr)
		}
		return nil
	}

	if err := w.jobService.CompleteJob(ctx, job.JobID, "Reprocessing complete"); err != nil {
		return fmt.Errorf("marking job %s complete: %w", job.JobID, err)
	}
	return nil
}

// WorkerPool manages multiple workers
type WorkerPool struct {
	workers []*Worker
	started bool
	mu      sync.Mutex
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(jobService jobs.Service, reprocessor Reprocessor, workerCount int, pollInterval time.Duration) *WorkerPool {
	pool := &WorkerPool{}
	for i := 0; i < workerCount; i++ {
		id := fmt.Sprintf("worker-%d", i+1)
		pool.workers = append(pool.workers, NewWorker(id, jobService, reprocessor, pollInterval))
	}
	return pool
}

// Start starts all workers in the pool
func (p *WorkerPool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("worker pool already started")
	}
	for _, w := range p.workers {
		w.Start(ctx)
	}
	p.started = true

	log.Printf("[INFO] Started %d reprocess worker(s)", len(p.workers))
	return nil
}

// Stop stops all workers in the pool
func (p *WorkerPool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	for _, w := range p.workers {
		w.Stop()
	}
	p.started = false
}
