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
	"time"

	"github.com/chefkoch/chefkoch/pkg/header"
)

// Status is the lifecycle state of a scheduler.
type Status string

const (
	StatusInitializing     Status = "initializing"
	StatusPreparingWorkers Status = "preparing-workers"
	StatusReady            Status = "ready"
	StatusWorking          Status = "working"
	StatusDone             Status = "done"
	StatusFailed           Status = "failed"
)

// JobStatus is the outcome of one job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
	JobCanceled  JobStatus = "canceled"
)

// JobResult records how a job ran.
type JobResult struct {
	ID       string    `json:"id" yaml:"id"`
	Node     string    `json:"node" yaml:"node"`
	Priority int       `json:"priority" yaml:"priority"`
	Status   JobStatus `json:"status" yaml:"status"`
	Started  time.Time `json:"started,omitzero" yaml:"started,omitempty"`
	Finished time.Time `json:"finished,omitzero" yaml:"finished,omitempty"`
	Error    string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary counts job outcomes.
type Summary struct {
	Total     int `json:"total" yaml:"total"`
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed" yaml:"failed"`
	Canceled  int `json:"canceled" yaml:"canceled"`
}

// Report is the result of a scheduler run.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	RunID    string        `json:"runId" yaml:"runId"`
	Recipe   string        `json:"recipe,omitempty" yaml:"recipe,omitempty"`
	Status   Status        `json:"status" yaml:"status"`
	Workers  int           `json:"workers" yaml:"workers"`
	Started  time.Time     `json:"started" yaml:"started"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Summary  Summary       `json:"summary" yaml:"summary"`
	Jobs     []JobResult   `json:"jobs" yaml:"jobs"`
}
