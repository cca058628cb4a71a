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

// Package suggest finds the closest known word for a mistyped one.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultMaxDistance is the largest edit distance still reported as a suggestion.
const DefaultMaxDistance = 3

// Closest returns the candidate with the smallest edit distance to word.
// Ties resolve to the earlier candidate. ok is false when no candidate lies
// within maxDistance.
func Closest(word string, candidates []string, maxDistance int) (best string, ok bool) {
	bestDistance := maxDistance + 1
	lower := strings.ToLower(word)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best, bestDistance <= maxDistance
}

// DidYouMean formats a hint for word, or returns "" without a close match.
func DidYouMean(word string, candidates []string) string {
	if best, ok := Closest(word, candidates, DefaultMaxDistance); ok {
		return "did you mean " + `"` + best + `"?`
	}
	return ""
}
