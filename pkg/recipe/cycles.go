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
	"strings"
)

// Cycle is a closed path of nodes along output -> input edges.
type Cycle struct {
	// Root is the root node the cycle was reached from, empty when the cycle
	// is not reachable from any root.
	Root string `json:"root,omitempty" yaml:"root,omitempty"`
	// Path starts and ends with the same node.
	Path []string `json:"path" yaml:"path"`
}

func (c Cycle) String() string {
	s := "the recipe contains a circle along " + strings.Join(c.Path, " -> ")
	if c.Root != "" {
		s += " reachable from " + c.Root
	}
	return s
}

// edges returns, per node index, the indexes of nodes consuming one of its
// published outputs, in recipe order.
func (r *Recipe) edges() [][]int {
	consumers := make(map[string][]int)
	for j, n := range r.Nodes {
		seen := make(map[string]bool)
		for _, ref := range n.References() {
			if !seen[ref] {
				seen[ref] = true
				consumers[ref] = append(consumers[ref], j)
			}
		}
	}

	adj := make([][]int, len(r.Nodes))
	for i, n := range r.Nodes {
		seen := make(map[int]bool)
		for _, out := range n.Published() {
			for _, j := range consumers[out] {
				if !seen[j] {
					seen[j] = true
					adj[i] = append(adj[i], j)
				}
			}
		}
	}
	return adj
}

// Roots returns the nodes whose references all come from the flavour.
func (r *Recipe) Roots() []Node {
	var roots []Node
	for _, n := range r.Nodes {
		if n.IsRoot() {
			roots = append(roots, n)
		}
	}
	return roots
}

// FindCycle runs a depth-first search from every root node and then from
// every node not yet visited. It returns the first cycle found, or nil.
func (r *Recipe) FindCycle() *Cycle {
	const (
		white = iota
		grey
		black
	)

	adj := r.edges()
	color := make([]int, len(r.Nodes))
	var stack []int

	var visit func(i int) []int
	visit = func(i int) []int {
		color[i] = grey
		stack = append(stack, i)
		for _, j := range adj[i] {
			switch color[j] {
			case grey:
				for k, s := range stack {
					if s == j {
						return append(append([]int{}, stack[k:]...), j)
					}
				}
			case white:
				if loop := visit(j); loop != nil {
					return loop
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[i] = black
		return nil
	}

	toCycle := func(root string, loop []int) *Cycle {
		c := &Cycle{Root: root}
		for _, idx := range loop {
			c.Path = append(c.Path, r.Nodes[idx].Name)
		}
		cyclesFound.Inc()
		slog.Warn("recipe contains a circle and cannot be executed", "path", strings.Join(c.Path, " -> "), "root", root)
		return c
	}

	for i, n := range r.Nodes {
		if !n.IsRoot() || color[i] != white {
			continue
		}
		slog.Debug("searching circles from root", "node", n.Name)
		stack = stack[:0]
		if loop := visit(i); loop != nil {
			return toCycle(n.Name, loop)
		}
	}
	for i := range r.Nodes {
		if color[i] != white {
			continue
		}
		stack = stack[:0]
		if loop := visit(i); loop != nil {
			return toCycle("", loop)
		}
	}
	return nil
}

// Err returns the cycle as an error value suitable for wrapping.
func (c *Cycle) Err() error {
	if c == nil {
		return nil
	}
	return fmt.Errorf("%s", c.String())
}
