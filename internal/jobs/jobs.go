// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

/*
Package jobs provides a small in-process runner for periodic housekeeping.

# Scope

Each registered job runs on its own ticker goroutine until the runner's
context is cancelled. Jobs are best-effort: a failing run is logged and
retried on the next tick, never escalated.
*/
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a named piece of periodic work.
type Job struct {
	// Name identifies the job in logs.
	Name string

	// Interval is the delay between runs.
	Interval time.Duration

	// Run performs one execution. The context is cancelled on shutdown.
	Run func(context.Context) error
}

// Runner executes registered jobs on independent schedules.
type Runner struct {
	logger *slog.Logger
	jobs   []Job
	wait   sync.WaitGroup
}

// NewRunner constructs an empty [Runner].
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Add registers a job. Must be called before [Runner.Start].
func (runner *Runner) Add(job Job) {
	runner.jobs = append(runner.jobs, job)
}

// Start launches one goroutine per registered job and returns immediately.
//
// Each job waits a full interval before its first run; startup work belongs
// in main, not here. Cancelling the context stops all jobs.
func (runner *Runner) Start(ctx context.Context) {
	for _, job := range runner.jobs {
		runner.wait.Add(1)

		go func(job Job) {
			defer runner.wait.Done()

			ticker := time.NewTicker(job.Interval)
			defer ticker.Stop()

			runner.logger.Info("job_scheduled",
				slog.String("job", job.Name),
				slog.Duration("interval", job.Interval),
			)

			for {
				select {
				case <-ctx.Done():
					runner.logger.Info("job_stopped", slog.String("job", job.Name))
					return
				case <-ticker.C:
					runner.execute(ctx, job)
				}
			}
		}(job)
	}
}

// Wait blocks until every job goroutine has exited.
func (runner *Runner) Wait() {
	runner.wait.Wait()
}

func (runner *Runner) execute(ctx context.Context, job Job) {
	started := time.Now()

	if err := job.Run(ctx); err != nil {
		runner.logger.Error("job_failed",
			slog.String("job", job.Name),
			slog.Duration("elapsed", time.Since(started)),
			slog.Any("error", err),
		)
		return
	}

	runner.logger.Debug("job_completed",
		slog.String("job", job.Name),
		slog.Duration("elapsed", time.Since(started)),
	)
}
