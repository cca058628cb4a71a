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

package validator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chefkoch_checks_total",
			Help: "Total number of recipe checks, by outcome",
		},
		[]string{"status"},
	)
	checkDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chefkoch_check_duration_seconds",
			Help:    "Duration of recipe checks in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)
)
