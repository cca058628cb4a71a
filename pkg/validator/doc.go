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

// Package validator checks the consistency of a recipe before it is cooked.
//
// Checks:
//   - unique-outputs: every published output name is declared once (error)
//   - inputs: nodes whose inputs cannot be computed are pruned (warning)
//   - acyclic: the data flow contains no circle (error)
//   - not-empty: at least one node survives pruning (warning)
//   - flavour-params: every flavour.<name> reference is defined (error)
//   - flavour-unused, flavour-values, flavour-entries: flavour hygiene (warning)
//
// Usage:
//
//	v := validator.New(validator.WithVersion(version))
//	result, err := v.Validate(ctx, r, f)
//	if err != nil {
//		return err
//	}
//	if result.Failed() {
//		// recipe cannot be cooked
//	}
package validator
