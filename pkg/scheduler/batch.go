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
	"log/slog"
	"time"

	cerrors "github.com/chefkoch/chefkoch/pkg/errors"
	"github.com/chefkoch/chefkoch/pkg/flavour"
	"github.com/chefkoch/chefkoch/pkg/header"
	"github.com/chefkoch/chefkoch/pkg/recipe"
)

// CombinationRun is the run of a plan with one flavour combination.
type CombinationRun struct {
	Index  int                 `json:"index" yaml:"index"`
	Values flavour.Combination `json:"values,omitempty" yaml:"values,omitempty"`
	Report *Report             `json:"report" yaml:"report"`
}

// BatchSummary counts the runs of a batch.
type BatchSummary struct {
	Combinations int `json:"combinations" yaml:"combinations"`
	Succeeded    int `json:"succeeded" yaml:"succeeded"`
	Failed       int `json:"failed" yaml:"failed"`
	Skipped      int `json:"skipped" yaml:"skipped"`
	Jobs         int `json:"jobs" yaml:"jobs"`
}

// BatchReport is the result of cooking a plan once per flavour combination.
type BatchReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Recipe   string           `json:"recipe,omitempty" yaml:"recipe,omitempty"`
	Status   Status           `json:"status" yaml:"status"`
	Started  time.Time        `json:"started" yaml:"started"`
	Duration time.Duration    `json:"duration" yaml:"duration"`
	Summary  BatchSummary     `json:"summary" yaml:"summary"`
	Runs     []CombinationRun `json:"runs" yaml:"runs"`
}

// PrepareFunc is called before the run of each combination.
type PrepareFunc func(c flavour.Combination) error

// RunCombinations runs plan once per combination, in order, each on a fresh
// scheduler built from opts. No combinations means one run without flavour
// values. The first failing run stops the batch; the remaining combinations
// are counted as skipped. The report is returned even when the batch fails.
func RunCombinations(ctx context.Context, plan *recipe.Plan, combos []flavour.Combination, prepare PrepareFunc, opts ...Option) (*BatchReport, error) {
	if plan == nil {
		return nil, cerrors.New(cerrors.ErrCodeInvalidRequest, "plan is nil")
	}
	if len(combos) == 0 {
		combos = []flavour.Combination{{}}
	}

	batch := &BatchReport{
		Recipe:  plan.Recipe,
		Started: time.Now().UTC(),
		Runs:    make([]CombinationRun, 0, len(combos)),
	}
	batch.Init(header.KindCookBatch, header.APIVersion, New(opts...).version)
	batch.Summary.Combinations = len(combos)

	finish := func(st Status) {
		batch.Status = st
		batch.Duration = time.Since(batch.Started)
		batch.Summary.Skipped = len(combos) - len(batch.Runs)
	}

	for i, c := range combos {
		if prepare != nil {
			if err := prepare(c); err != nil {
				finish(StatusFailed)
				return batch, cerrors.WrapWithContext(cerrors.ErrCodeInternal, "failed to prepare combination", err,
					map[string]any{"index": i})
			}
		}

		slog.Debug("cooking combination", "index", i, "of", len(combos), "values", c)
		report, err := New(opts...).Run(ctx, plan)
		batch.Runs = append(batch.Runs, CombinationRun{Index: i, Values: c, Report: report})
		if report != nil {
			batch.Summary.Jobs += report.Summary.Total
		}
		if err != nil {
			batch.Summary.Failed++
			finish(StatusFailed)
			return batch, err
		}
		batch.Summary.Succeeded++
	}

	finish(StatusDone)
	return batch, nil
}
