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

package recipe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recipeReadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chefkoch_recipe_read_duration_seconds",
			Help:    "Duration of loading and parsing a recipe in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	recipeReadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chefkoch_recipe_read_errors_total",
			Help: "Total number of recipes that failed to load or parse",
		},
	)
	nodesPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chefkoch_recipe_nodes_pruned_total",
			Help: "Total number of nodes removed for unresolvable inputs",
		},
	)
	cyclesFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chefkoch_recipe_cycles_total",
			Help: "Total number of recipes found to contain a circle",
		},
	)
	plansBuilt = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chefkoch_recipe_plans_total",
			Help: "Total number of execution plans built",
		},
	)
)
