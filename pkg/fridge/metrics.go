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

package fridge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	itemsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chefkoch_fridge_items_added_total",
			Help: "Total number of item records written, by kind",
		},
		[]string{"kind"},
	)
	itemsVerified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chefkoch_fridge_items_verified_total",
			Help: "Total number of items verified during inspection, by state",
		},
		[]string{"state"},
	)
	verifyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chefkoch_fridge_verify_duration_seconds",
			Help:    "Duration of verifying a single item in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
	)
)
