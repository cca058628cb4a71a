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
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Describe writes a human-readable listing of the recipe's nodes.
func (r *Recipe) Describe(w io.Writer) error {
	title := cases.Title(language.English)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := fmt.Sprintf("Recipe with %d node(s)", len(r.Nodes))
	if r.Source != "" {
		header += " from " + r.Source
	}
	fmt.Fprintln(tw, header)

	for _, n := range r.Nodes {
		fmt.Fprintf(tw, "\nNode:\t%s\n", n.Name)
		fmt.Fprintln(tw, "  Inputs:")
		if len(n.Inputs) == 0 {
			fmt.Fprintln(tw, "    <none>")
		}
		for _, name := range n.InputNames() {
			fmt.Fprintf(tw, "    %s\t%s\n", name, strings.Join(n.Inputs[name], ", "))
		}
		fmt.Fprintln(tw, "  Outputs:")
		if len(n.Outputs) == 0 {
			fmt.Fprintln(tw, "    <none>")
		}
		for _, name := range n.OutputNames() {
			fmt.Fprintf(tw, "    %s\t%s\n", name, n.Outputs[name])
		}
		fmt.Fprintln(tw, "  Executes:")
		fmt.Fprintf(tw, "    %s\t%s\n", title.String(string(n.Kind())), n.StepSource)
	}
	return tw.Flush()
}
