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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/chefkoch/chefkoch/pkg/flavour"
	"github.com/chefkoch/chefkoch/pkg/fridge"
	"github.com/chefkoch/chefkoch/pkg/recipe"
)

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithFridge stores a result record for every published output of a job.
func WithFridge(f *fridge.Fridge) RecorderOption {
	return func(r *Recorder) {
		r.fridge = f
	}
}

// Recorder is the Executor that records jobs as planned without running
// their step sources.
type Recorder struct {
	fridge *fridge.Fridge

	mu     sync.Mutex
	jobs   []recipe.Job
	hashes map[string]string
}

// NewRecorder returns an empty recorder.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{hashes: make(map[string]string)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Seed registers the hash of a reference, typically a resource file already
// stored in the fridge, so results depending on it carry the hash.
func (r *Recorder) Seed(ref, hash string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hashes[ref] = hash
}

// SeedCombination registers the flavour.<name> references of one flavour
// combination, so results depending on a parameter differ per value. With a
// fridge every value is also stored on the fridge.ParameterShelf.
func (r *Recorder) SeedCombination(c flavour.Combination) error {
	var shelf *fridge.Shelf
	if r.fridge != nil && len(c) > 0 {
		var err error
		if shelf, err = r.fridge.Shelf(fridge.ParameterShelf); err != nil {
			return fmt.Errorf("failed to open parameter shelf: %w", err)
		}
	}

	for name, value := range c {
		if shelf != nil {
			item, err := shelf.AddParameter(name, value)
			if err != nil {
				return fmt.Errorf("failed to store flavour parameter %s: %w", name, err)
			}
			r.Seed(recipe.FlavourPrefix+name, item.Hash)
			continue
		}
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to hash flavour parameter %s: %w", name, err)
		}
		sum := sha256.Sum256(append([]byte(name+"\x00"), data...))
		r.Seed(recipe.FlavourPrefix+name, hex.EncodeToString(sum[:]))
	}
	return nil
}

// Hash returns the hash known for a reference.
func (r *Recorder) Hash(ref string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hashes[ref]
	return h, ok
}

// Execute records job.
func (r *Recorder) Execute(ctx context.Context, job recipe.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if r.fridge != nil {
		if err := r.storeResults(job); err != nil {
			return err
		}
	}

	r.mu.Lock()
	r.jobs = append(r.jobs, job)
	r.mu.Unlock()

	slog.Info("recorded job", "node", job.Node, "kind", job.Kind, "stepsource", job.StepSource, "priority", job.Priority)
	return nil
}

func (r *Recorder) storeResults(job recipe.Job) error {
	shelf, err := r.fridge.Shelf(job.Node)
	if err != nil {
		return fmt.Errorf("failed to open shelf for %s: %w", job.Node, err)
	}

	var deps []string
	r.mu.Lock()
	for _, refs := range job.Inputs {
		for _, ref := range refs {
			if h, ok := r.hashes[ref]; ok {
				deps = append(deps, h)
			}
		}
	}
	r.mu.Unlock()
	sort.Strings(deps)

	names := make([]string, 0, len(job.Outputs))
	for name := range job.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		published := job.Outputs[name]
		item, err := shelf.AddResult(published, job.StepSource, deps)
		if err != nil {
			return fmt.Errorf("failed to record result %s of %s: %w", published, job.Node, err)
		}
		r.Seed(published, item.Hash)
	}
	return nil
}

// Jobs returns the recorded jobs in completion order.
func (r *Recorder) Jobs() []recipe.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recipe.Job(nil), r.jobs...)
}
