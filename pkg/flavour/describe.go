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
	"io"
	"strings"
	"text/tabwriter"
)

// Describe writes every parameter with its values.
func (f *Flavour) Describe(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	line := fmt.Sprintf("Flavour with %d parameter(s), %d combination(s)", len(f.Params), f.Count())
	if f.Source != "" {
		line += " from " + f.Source
	}
	fmt.Fprintln(tw, line)

	for _, name := range f.Names() {
		p := f.Params[name]
		values := make([]string, len(p.Values))
		for i, v := range p.Values {
			values[i] = fmt.Sprint(v)
		}
		fmt.Fprintf(tw, "  %s\t%d value(s)\t%s\n", name, len(p.Values), strings.Join(values, ", "))
	}
	for _, warn := range f.Warnings {
		fmt.Fprintf(tw, "  warning:\t%s\n", warn)
	}
	return tw.Flush()
}
