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
	"time"

	"github.com/chefkoch/chefkoch/pkg/header"
)

// Status represents the overall check outcome.
type Status string

const (
	// StatusPass indicates no findings.
	StatusPass Status = "pass"

	// StatusWarn indicates the recipe can be cooked but parts of it are dropped
	// or unused.
	StatusWarn Status = "warn"

	// StatusFail indicates the recipe cannot be cooked.
	StatusFail Status = "fail"
)

// Severity of a single finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Check names.
const (
	CheckUniqueOutputs  = "unique-outputs"
	CheckInputs         = "inputs"
	CheckAcyclic        = "acyclic"
	CheckNotEmpty       = "not-empty"
	CheckFlavourParams  = "flavour-params"
	CheckFlavourUnused  = "flavour-unused"
	CheckFlavourValues  = "flavour-values"
	CheckFlavourEntries = "flavour-entries"
)

// CheckResult is the complete outcome of checking a recipe.
type CheckResult struct {
	header.Header `json:",inline" yaml:",inline"`

	// RecipeSource is the path/URI of the recipe that was checked.
	RecipeSource string `json:"recipeSource,omitempty" yaml:"recipeSource,omitempty"`

	// FlavourSource is the path/URI of the flavour, if one was given.
	FlavourSource string `json:"flavourSource,omitempty" yaml:"flavourSource,omitempty"`

	Summary  Summary   `json:"summary" yaml:"summary"`
	Findings []Finding `json:"findings" yaml:"findings"`

	// Computable lists the nodes left after pruning, in recipe order.
	Computable []string `json:"computable" yaml:"computable"`
}

// Summary contains aggregate statistics about the check.
type Summary struct {
	Status   Status `json:"status" yaml:"status"`
	Nodes    int    `json:"nodes" yaml:"nodes"`
	Errors   int    `json:"errors" yaml:"errors"`
	Warnings int    `json:"warnings" yaml:"warnings"`

	// Combinations is the number of flavour combinations, zero without flavour.
	Combinations int `json:"combinations,omitempty" yaml:"combinations,omitempty"`

	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Finding is one problem discovered by a check.
type Finding struct {
	Check    string   `json:"check" yaml:"check"`
	Severity Severity `json:"severity" yaml:"severity"`
	Node     string   `json:"node,omitempty" yaml:"node,omitempty"`
	Message  string   `json:"message" yaml:"message"`
}

func newCheckResult() *CheckResult {
	return &CheckResult{
		Findings:   make([]Finding, 0),
		Computable: make([]string, 0),
	}
}

func (r *CheckResult) add(check string, sev Severity, node, msg string) {
	r.Findings = append(r.Findings, Finding{Check: check, Severity: sev, Node: node, Message: msg})
	switch sev {
	case SeverityError:
		r.Summary.Errors++
	case SeverityWarning:
		r.Summary.Warnings++
	}
}

// Failed reports whether the check found errors.
func (r *CheckResult) Failed() bool {
	return r.Summary.Status == StatusFail
}
