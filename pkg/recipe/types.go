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
	"encoding/json"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FlavourPrefix marks references that are resolved from the flavour file.
const FlavourPrefix = "flavour."

// BuiltinCollect gathers the values of its inputs across flavour combinations.
const BuiltinCollect = "collect"

// BuiltIns lists the step sources a node may name without a file.
var BuiltIns = []string{BuiltinCollect}

// StepKind classifies what a node executes.
type StepKind string

const (
	StepKindPython  StepKind = "python"
	StepKindRecipe  StepKind = "recipe"
	StepKindBuiltin StepKind = "builtin"
	StepKindUnknown StepKind = "unknown"
)

// KindOf classifies a step source by extension or built-in name.
func KindOf(stepsource string) StepKind {
	switch strings.ToLower(filepath.Ext(stepsource)) {
	case ".py":
		return StepKindPython
	case ".json":
		return StepKindRecipe
	}
	if slices.Contains(BuiltIns, stepsource) {
		return StepKindBuiltin
	}
	return StepKindUnknown
}

// Input holds the references bound to one step input. A single reference
// encodes as a string, several as a list.
type Input []string

// MarshalJSON implements json.Marshaler.
func (in Input) MarshalJSON() ([]byte, error) {
	if len(in) == 1 {
		return json.Marshal(in[0])
	}
	return json.Marshal([]string(in))
}

// MarshalYAML implements yaml.Marshaler.
func (in Input) MarshalYAML() (any, error) {
	if len(in) == 1 {
		return in[0], nil
	}
	return []string(in), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *Input) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := toInput(raw)
	if err != nil {
		return err
	}
	*in = v
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (in *Input) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	v, err := toInput(raw)
	if err != nil {
		return err
	}
	*in = v
	return nil
}

// Node is one step of a recipe. Inputs map the step's input names to
// references; outputs map the step's output names to the names published to
// the rest of the recipe.
type Node struct {
	Name       string            `json:"name" yaml:"name"`
	Inputs     map[string]Input  `json:"inputs" yaml:"inputs"`
	Outputs    map[string]string `json:"outputs" yaml:"outputs"`
	StepSource string            `json:"stepsource" yaml:"stepsource"`
}

// Kind returns the kind of the node's step source.
func (n Node) Kind() StepKind {
	return KindOf(n.StepSource)
}

// InputNames returns the node's input names in sorted order.
func (n Node) InputNames() []string {
	return sortedKeys(n.Inputs)
}

// OutputNames returns the node's step output names in sorted order.
func (n Node) OutputNames() []string {
	return sortedKeys(n.Outputs)
}

// References returns every reference of the node, ordered by input name.
func (n Node) References() []string {
	var refs []string
	for _, name := range n.InputNames() {
		refs = append(refs, n.Inputs[name]...)
	}
	return refs
}

// Published returns the published output names ordered by step output name.
func (n Node) Published() []string {
	out := make([]string, 0, len(n.Outputs))
	for _, name := range n.OutputNames() {
		out = append(out, n.Outputs[name])
	}
	return out
}

// IsRoot reports whether every reference of the node comes from the flavour.
func (n Node) IsRoot() bool {
	for _, ref := range n.References() {
		if !strings.HasPrefix(ref, FlavourPrefix) {
			return false
		}
	}
	return true
}

// Recipe is the workflow of a simulation: nodes exchanging named data.
type Recipe struct {
	// Source is where the recipe was loaded from, if anywhere.
	Source string `json:"-" yaml:"-"`
	Nodes  []Node `json:"nodes" yaml:"nodes"`
}

// Node returns the first node named name.
func (r *Recipe) Node(name string) (Node, bool) {
	for _, n := range r.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}

// NodeNames returns node names in recipe order.
func (r *Recipe) NodeNames() []string {
	names := make([]string, len(r.Nodes))
	for i, n := range r.Nodes {
		names[i] = n.Name
	}
	return names
}

// FlavourParams returns the distinct parameter names referenced through the
// flavour prefix, sorted.
func (r *Recipe) FlavourParams() []string {
	seen := make(map[string]struct{})
	for _, n := range r.Nodes {
		for _, ref := range n.References() {
			if name, ok := strings.CutPrefix(ref, FlavourPrefix); ok && name != "" {
				seen[name] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
