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
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	cerrors "github.com/chefkoch/chefkoch/pkg/errors"
	"github.com/chefkoch/chefkoch/pkg/flavour"
	"github.com/chefkoch/chefkoch/pkg/header"
	"github.com/chefkoch/chefkoch/pkg/recipe"
	"github.com/chefkoch/chefkoch/pkg/suggest"
)

// Validator checks recipes, optionally against a flavour.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string

	integrity []recipe.IntegrityOption
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// WithIntegrityOptions passes options to the input integrity check.
func WithIntegrityOptions(opts ...recipe.IntegrityOption) Option {
	return func(v *Validator) {
		v.integrity = append(v.integrity, opts...)
	}
}

// New creates a new Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks r and, when f is not nil, the flavour parameters it
// references. r is not modified; the nodes that survive pruning are listed
// in CheckResult.Computable.
func (v *Validator) Validate(ctx context.Context, r *recipe.Recipe, f *flavour.Flavour) (*CheckResult, error) {
	start := time.Now()

	if r == nil {
		return nil, cerrors.New(cerrors.ErrCodeInvalidRequest, "recipe cannot be nil")
	}

	result := newCheckResult()
	result.Init(header.KindCheckResult, header.APIVersion, v.Version)
	result.RecipeSource = r.Source
	result.Summary.Nodes = len(r.Nodes)

	pruned := &recipe.Recipe{Source: r.Source, Nodes: slices.Clone(r.Nodes)}
	report := pruned.InputIntegrity(v.integrity...)
	for i, msg := range report.Errors {
		result.add(CheckUniqueOutputs, SeverityError, report.ErrorNodes[i], msg)
	}
	for i, msg := range report.Warnings {
		result.add(CheckInputs, SeverityWarning, report.Removed[i], msg)
	}
	result.Computable = append(result.Computable, pruned.NodeNames()...)

	if err := ctx.Err(); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeTimeout, "check canceled", err)
	}

	if c := pruned.FindCycle(); c != nil {
		node := ""
		if len(c.Path) > 0 {
			node = c.Path[0]
		}
		result.add(CheckAcyclic, SeverityError, node, c.String())
	}

	if len(r.Nodes) > 0 && len(pruned.Nodes) == 0 {
		result.add(CheckNotEmpty, SeverityWarning, "", "the recipe has no computable nodes")
	}

	if f != nil {
		result.FlavourSource = f.Source
		v.checkFlavour(result, pruned, f)
		result.Summary.Combinations = f.Count()
	}

	switch {
	case result.Summary.Errors > 0:
		result.Summary.Status = StatusFail
	case result.Summary.Warnings > 0:
		result.Summary.Status = StatusWarn
	default:
		result.Summary.Status = StatusPass
	}
	result.Summary.Duration = time.Since(start)

	checksTotal.WithLabelValues(string(result.Summary.Status)).Inc()
	checkDuration.Observe(result.Summary.Duration.Seconds())
	slog.Debug("recipe checked",
		"status", result.Summary.Status,
		"errors", result.Summary.Errors,
		"warnings", result.Summary.Warnings)
	return result, nil
}

func (v *Validator) checkFlavour(result *CheckResult, r *recipe.Recipe, f *flavour.Flavour) {
	names := f.Names()
	used := make(map[string]bool)

	for _, n := range r.Nodes {
		for _, ref := range n.References() {
			param, ok := strings.CutPrefix(ref, recipe.FlavourPrefix)
			if !ok {
				continue
			}
			used[param] = true
			if f.Has(param) {
				continue
			}
			msg := fmt.Sprintf("node %s references flavour parameter %s which the flavour does not define", n.Name, param)
			if hint := suggest.DidYouMean(param, names); hint != "" {
				msg += ", " + hint
			}
			result.add(CheckFlavourParams, SeverityError, n.Name, msg)
		}
	}

	for _, name := range names {
		if !used[name] {
			result.add(CheckFlavourUnused, SeverityWarning, "",
				fmt.Sprintf("flavour parameter %s is not used by the recipe", name))
		}
		if p, _ := f.Param(name); len(p.Values) == 0 {
			result.add(CheckFlavourValues, SeverityWarning, "",
				fmt.Sprintf("flavour parameter %s has no values", name))
		}
	}
	for _, warn := range f.Warnings {
		result.add(CheckFlavourEntries, SeverityWarning, "", warn)
	}
}
