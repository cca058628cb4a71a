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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chefkoch_scheduler_runs_total",
			Help: "Total number of scheduler runs, by final status",
		},
		[]string{"status"},
	)
	jobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chefkoch_scheduler_jobs_total",
			Help: "Total number of jobs, by outcome",
		},
		[]string{"status"},
	)
	jobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chefkoch_scheduler_job_duration_seconds",
			Help:    "Duration of a single job in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chefkoch_scheduler_run_duration_seconds",
			Help:    "Duration of successful scheduler runs in seconds",
			Buckets: []float64{0.01, 0.1, 1, 10, 60, 300, 1800},
		},
	)
)
