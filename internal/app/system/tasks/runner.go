// Package tasks runs periodic background jobs.
package tasks

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a named function executed on a fixed interval.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Runner executes a set of jobs on their intervals until stopped.
type Runner struct {
	jobs   []Job
	log    *zap.Logger
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewRunner creates a runner for the given jobs. Start must be called
// to begin execution.
func NewRunner(logger *zap.Logger, jobs ...Job) *Runner {
	return &Runner{
		jobs:   jobs,
		log:    logger,
		stopCh: make(chan struct{}),
	}
}

// Start launches one goroutine per job.
func (r *Runner) Start() {
	for _, job := range r.jobs {
		r.wg.Add(1)
		go r.loop(job)
	}
	r.log.Info("background jobs started", zap.Int("count", len(r.jobs)))
}

// Stop signals all jobs to stop and waits for them to finish. A job
// mid-run completes its current execution first.
func (r *Runner) Stop() {
	close(r.stopCh)
	r.wg.Wait()
	r.log.Info("background jobs stopped")
}

func (r *Runner) loop(job Job) {
	defer r.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.runOnce(job)
		}
	}
}

func (r *Runner) runOnce(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := job.Run(ctx); err != nil {
		r.log.Error("background job failed",
			zap.String("job", job.Name),
			zap.Error(err))
	}
}
