// Copyright (c) 2025, The chefkoch Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chefkoch/chefkoch/pkg/defaults"
	cerrors "github.com/chefkoch/chefkoch/pkg/errors"
	"github.com/chefkoch/chefkoch/pkg/header"
	"github.com/chefkoch/chefkoch/pkg/recipe"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Executor performs a single job.
type Executor interface {
	Execute(ctx context.Context, job recipe.Job) error
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, job recipe.Job) error

// Execute calls f(ctx, job).
func (f ExecutorFunc) Execute(ctx context.Context, job recipe.Job) error {
	return f(ctx, job)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithWorkers sets the number of jobs running at once within a priority.
func WithWorkers(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithExecutor sets the executor jobs are handed to.
func WithExecutor(e Executor) Option {
	return func(s *Scheduler) {
		if e != nil {
			s.executor = e
		}
	}
}

// WithVersion records the tool version in report headers.
func WithVersion(version string) Option {
	return func(s *Scheduler) {
		s.version = version
	}
}

// Scheduler runs plan priorities strictly in order and the jobs of one
// priority concurrently on a bounded number of workers.
type Scheduler struct {
	workers  int
	executor Executor
	version  string

	mu      sync.RWMutex
	status  Status
	history []Status
}

// New returns a scheduler in the initializing state. Without WithExecutor
// jobs go to a Recorder.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		workers:  defaults.SchedulerWorkers,
		executor: NewRecorder(),
	}
	s.setStatus(StatusInitializing)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status returns the current state.
func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// History returns every state the scheduler went through, oldest first.
func (s *Scheduler) History() []Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Status(nil), s.history...)
}

func (s *Scheduler) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.history = append(s.history, st)
	s.mu.Unlock()
	slog.Debug("scheduler status", "status", st)
}

// Run executes plan. The first failing job cancels every job not yet
// finished; canceled jobs and jobs of later priorities are reported as
// canceled. The report is returned even when Run fails.
func (s *Scheduler) Run(ctx context.Context, plan *recipe.Plan) (*Report, error) {
	if plan == nil {
		return nil, cerrors.New(cerrors.ErrCodeInvalidRequest, "plan is nil")
	}
	if st := s.Status(); st != StatusInitializing {
		return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "scheduler already used",
			map[string]any{"status": st})
	}

	s.setStatus(StatusPreparingWorkers)
	report := &Report{
		RunID:   uuid.NewString(),
		Recipe:  plan.Recipe,
		Workers: s.workers,
		Started: time.Now().UTC(),
	}
	report.Init(header.KindCookReport, header.APIVersion, s.version)

	// one slot per job, addressed by priority offset
	offsets := make([]int, len(plan.Priorities))
	for p, jobs := range plan.Priorities {
		offsets[p] = len(report.Jobs)
		for _, job := range jobs {
			report.Jobs = append(report.Jobs, JobResult{
				ID:       job.ID,
				Node:     job.Node,
				Priority: p,
				Status:   JobPending,
			})
		}
	}
	s.setStatus(StatusReady)

	slog.Info("cooking",
		"run", report.RunID,
		"priorities", len(plan.Priorities),
		"jobs", len(report.Jobs),
		"workers", s.workers)

	s.setStatus(StatusWorking)
	var runErr error
	for p, jobs := range plan.Priorities {
		if runErr = s.runPriority(ctx, jobs, report.Jobs[offsets[p]:offsets[p]+len(jobs)]); runErr != nil {
			break
		}
	}

	report.Duration = time.Since(report.Started)
	for i := range report.Jobs {
		jr := &report.Jobs[i]
		if jr.Status == JobPending {
			jr.Status = JobCanceled
		}
		report.Summary.Total++
		switch jr.Status {
		case JobSucceeded:
			report.Summary.Succeeded++
		case JobFailed:
			report.Summary.Failed++
		case JobCanceled:
			report.Summary.Canceled++
		}
		jobsTotal.WithLabelValues(string(jr.Status)).Inc()
	}

	if runErr != nil {
		s.setStatus(StatusFailed)
		report.Status = StatusFailed
		runsTotal.WithLabelValues(string(StatusFailed)).Inc()
		if ctx.Err() != nil {
			return report, cerrors.Wrap(cerrors.ErrCodeTimeout, "cooking canceled", runErr)
		}
		return report, cerrors.Wrap(cerrors.ErrCodeInternal, "cooking failed", runErr)
	}

	s.setStatus(StatusDone)
	report.Status = StatusDone
	runsTotal.WithLabelValues(string(StatusDone)).Inc()
	runDuration.Observe(report.Duration.Seconds())
	return report, nil
}

func (s *Scheduler) runPriority(ctx context.Context, jobs []recipe.Job, results []JobResult) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			res := &results[i]
			res.Started = time.Now().UTC()
			err := s.executor.Execute(gctx, job)
			res.Finished = time.Now().UTC()
			jobDuration.Observe(res.Finished.Sub(res.Started).Seconds())

			if err != nil {
				res.Status = JobFailed
				if gctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
					res.Status = JobCanceled
				}
				res.Error = err.Error()
				slog.Error("job failed", "node", job.Node, "id", job.ID, "error", err)
				return fmt.Errorf("job %s (%s): %w", job.Node, job.ID, err)
			}
			res.Status = JobSucceeded
			slog.Debug("job done", "node", job.Node, "id", job.ID)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
