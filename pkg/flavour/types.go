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

package flavour

import (
	"fmt"
	"math"
	"sort"
)

// DefaultMaxCombinations bounds the number of combinations Combinations
// expands to.
const DefaultMaxCombinations = 100000

// FileValue is a parameter value stored in a file, addressed by key.
type FileValue struct {
	Type string `json:"type" yaml:"type"`
	File string `json:"file" yaml:"file"`
	Key  string `json:"key" yaml:"key"`
}

func (f FileValue) String() string {
	return fmt.Sprintf("file %s (key: %s)", f.File, f.Key)
}

// Param is a named parameter with every value the simulation should run with.
// Values are strings, numbers, booleans or FileValues.
type Param struct {
	Name   string `json:"name" yaml:"name"`
	Values []any  `json:"values" yaml:"values"`
}

// Flavour is the collection of simulation parameters.
type Flavour struct {
	// Source is where the flavour was loaded from, if anywhere.
	Source string            `json:"-" yaml:"-"`
	Params map[string]*Param `json:"params" yaml:"params"`
	// Warnings lists entries that were skipped while parsing.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// New returns an empty flavour.
func New() *Flavour {
	return &Flavour{Params: make(map[string]*Param)}
}

// Names returns the parameter names in sorted order.
func (f *Flavour) Names() []string {
	names := make([]string, 0, len(f.Params))
	for n := range f.Params {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Param returns the parameter called name.
func (f *Flavour) Param(name string) (*Param, bool) {
	p, ok := f.Params[name]
	return p, ok
}

// Has reports whether the flavour defines name.
func (f *Flavour) Has(name string) bool {
	_, ok := f.Params[name]
	return ok
}

// Count returns the number of parameter combinations. A count that does
// not fit an int is reported as math.MaxInt.
func (f *Flavour) Count() int {
	for _, p := range f.Params {
		if len(p.Values) == 0 {
			return 0
		}
	}
	n := 1
	for _, p := range f.Params {
		if n > math.MaxInt/len(p.Values) {
			return math.MaxInt
		}
		n *= len(p.Values)
	}
	return n
}

// Combination assigns one value to every parameter.
type Combination map[string]any

// Combinations returns the cartesian product of all parameter values,
// varying the last parameter name fastest. It fails when the product exceeds
// max (DefaultMaxCombinations when max <= 0).
func (f *Flavour) Combinations(max int) ([]Combination, error) {
	if max <= 0 {
		max = DefaultMaxCombinations
	}
	if count := f.Count(); count > max {
		return nil, fmt.Errorf("flavour expands to %d combinations, limit is %d", count, max)
	}

	names := f.Names()
	combos := []Combination{{}}
	for _, name := range names {
		values := f.Params[name].Values
		next := make([]Combination, 0, len(combos)*len(values))
		for _, c := range combos {
			for _, v := range values {
				nc := make(Combination, len(c)+1)
				for k, cv := range c {
					nc[k] = cv
				}
				nc[name] = v
				next = append(next, nc)
			}
		}
		combos = next
	}
	return combos, nil
}
