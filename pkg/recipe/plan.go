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
	"sort"

	cerrors "github.com/chefkoch/chefkoch/pkg/errors"
	"github.com/chefkoch/chefkoch/pkg/header"
	"github.com/google/uuid"
)

// Job is one node scheduled for execution.
type Job struct {
	ID         string            `json:"id" yaml:"id"`
	Node       string            `json:"node" yaml:"node"`
	Priority   int               `json:"priority" yaml:"priority"`
	StepSource string            `json:"stepsource" yaml:"stepsource"`
	Kind       StepKind          `json:"kind" yaml:"kind"`
	Inputs     map[string]Input  `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs    map[string]string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	// DependsOn names the nodes producing this job's inputs.
	DependsOn []string `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`
}

// Plan groups jobs by priority. Every job of priority n only depends on jobs
// of priorities below n.
type Plan struct {
	header.Header `json:",inline" yaml:",inline"`

	Recipe     string  `json:"recipe,omitempty" yaml:"recipe,omitempty"`
	Jobs       int     `json:"jobs" yaml:"jobs"`
	Priorities [][]Job `json:"priorities" yaml:"priorities"`
}

// PlanOption configures Plan.
type PlanOption func(*planConfig)

type planConfig struct {
	version string
	newID   func() string
}

// WithVersion records the tool version in the plan header.
func WithVersion(version string) PlanOption {
	return func(c *planConfig) {
		c.version = version
	}
}

// WithIDGenerator replaces the UUID generator for job IDs.
func WithIDGenerator(fn func() string) PlanOption {
	return func(c *planConfig) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// Plan orders the nodes for execution. A node without producers among the
// other nodes has priority 0; any other node has one more than the highest
// priority of its producers. The recipe must be free of cycles.
func (r *Recipe) Plan(opts ...PlanOption) (*Plan, error) {
	cfg := planConfig{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&cfg)
	}

	if c := r.FindCycle(); c != nil {
		return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRecipe, c.String(),
			map[string]any{"path": c.Path})
	}

	producer := make(map[string]int)
	for i, n := range r.Nodes {
		for _, out := range n.Published() {
			if _, dup := producer[out]; !dup {
				producer[out] = i
			}
		}
	}

	deps := make([][]int, len(r.Nodes))
	for i, n := range r.Nodes {
		seen := make(map[int]bool)
		for _, ref := range n.References() {
			if p, ok := producer[ref]; ok && p != i && !seen[p] {
				seen[p] = true
				deps[i] = append(deps[i], p)
			}
		}
	}

	prio := make([]int, len(r.Nodes))
	done := make([]bool, len(r.Nodes))
	var level func(i int) int
	level = func(i int) int {
		if done[i] {
			return prio[i]
		}
		p := 0
		for _, d := range deps[i] {
			if l := level(d) + 1; l > p {
				p = l
			}
		}
		prio[i], done[i] = p, true
		return p
	}

	maxPrio := -1
	for i := range r.Nodes {
		if l := level(i); l > maxPrio {
			maxPrio = l
		}
	}

	plan := &Plan{
		Recipe:     r.Source,
		Jobs:       len(r.Nodes),
		Priorities: make([][]Job, maxPrio+1),
	}
	plan.Init(header.KindPlan, header.APIVersion, cfg.version)

	for i, n := range r.Nodes {
		var dependsOn []string
		for _, d := range deps[i] {
			dependsOn = append(dependsOn, r.Nodes[d].Name)
		}
		sort.Strings(dependsOn)

		plan.Priorities[prio[i]] = append(plan.Priorities[prio[i]], Job{
			ID:         cfg.newID(),
			Node:       n.Name,
			Priority:   prio[i],
			StepSource: n.StepSource,
			Kind:       n.Kind(),
			Inputs:     n.Inputs,
			Outputs:    n.Outputs,
			DependsOn:  dependsOn,
		})
	}
	for _, jobs := range plan.Priorities {
		sort.SliceStable(jobs, func(a, b int) bool { return jobs[a].Node < jobs[b].Node })
	}

	plansBuilt.Inc()
	return plan, nil
}
