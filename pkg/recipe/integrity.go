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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// IntegrityReport lists what InputIntegrity found.
type IntegrityReport struct {
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	// ErrorNodes holds, per entry of Errors, the node it was raised for.
	ErrorNodes []string `json:"errorNodes,omitempty" yaml:"errorNodes,omitempty"`
	Warnings   []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	// Removed holds the names of nodes pruned for unresolvable inputs.
	Removed []string `json:"removed,omitempty" yaml:"removed,omitempty"`
}

// HasErrors reports whether the recipe has fatal integrity errors.
func (r *IntegrityReport) HasErrors() bool {
	return len(r.Errors) > 0
}

// IntegrityOption configures InputIntegrity.
type IntegrityOption func(*integrityConfig)

type integrityConfig struct {
	baseDir    string
	fileLookup bool
}

// WithBaseDir resolves relative file references against dir.
func WithBaseDir(dir string) IntegrityOption {
	return func(c *integrityConfig) {
		c.baseDir = dir
	}
}

// WithFileLookup toggles accepting references that name existing files.
// It is on by default; the HTTP API turns it off.
func WithFileLookup(enabled bool) IntegrityOption {
	return func(c *integrityConfig) {
		c.fileLookup = enabled
	}
}

// InputIntegrity verifies that every published output name is unique and
// that every reference resolves. A reference resolves when it is a published
// output, starts with "flavour.", names a .json file or names an existing
// file. Nodes with unresolvable references are removed from the recipe
// together with their outputs, repeatedly, until every remaining node
// resolves.
func (r *Recipe) InputIntegrity(opts ...IntegrityOption) *IntegrityReport {
	cfg := integrityConfig{fileLookup: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	report := &IntegrityReport{}

	// published output name -> number of nodes publishing it
	outputs := make(map[string]int)
	for _, n := range r.Nodes {
		for _, out := range n.Published() {
			if outputs[out] > 0 {
				report.Errors = append(report.Errors, fmt.Sprintf(
					"the output %s of node %s has the same name as an output declared before", out, n.Name))
				report.ErrorNodes = append(report.ErrorNodes, n.Name)
			}
			outputs[out]++
		}
	}

	valid := func(ref string) bool {
		switch {
		case outputs[ref] > 0:
			return true
		case strings.HasPrefix(ref, FlavourPrefix):
			return true
		case strings.EqualFold(filepath.Ext(ref), ".json"):
			return true
		case cfg.fileLookup:
			return isFile(cfg.baseDir, ref)
		default:
			return false
		}
	}

	for {
		kept := r.Nodes[:0:0]
		var unreachable []Node
		for _, n := range r.Nodes {
			ok := true
			for _, ref := range n.References() {
				if !valid(ref) {
					slog.Debug("unresolved reference", "node", n.Name, "reference", ref)
					ok = false
					break
				}
			}
			if ok {
				kept = append(kept, n)
			} else {
				unreachable = append(unreachable, n)
			}
		}
		if len(unreachable) == 0 {
			break
		}
		for _, n := range unreachable {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"node %s or one of its previous nodes has an invalid input and therefore cannot be computed", n.Name))
			report.Removed = append(report.Removed, n.Name)
			for _, out := range n.Published() {
				outputs[out]--
			}
		}
		r.Nodes = kept
	}

	if len(report.Removed) > 0 {
		nodesPruned.Add(float64(len(report.Removed)))
	}
	return report
}

func isFile(baseDir, ref string) bool {
	if ref == "" {
		return false
	}
	path := ref
	if baseDir != "" && !filepath.IsAbs(ref) {
		path = filepath.Join(baseDir, ref)
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
