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

// Package flavour parses flavour files: the parameters of a simulation and
// every value each parameter should be run with.
//
// An entry is a scalar, a list, an inclusive range or a file value:
//
//	{
//	  "fS": 9.22e9,
//	  "average": [1, 16, 64],
//	  "subsample": [{"type": "range", "start": 1, "stop": 4, "step": 1}],
//	  "weights": {"type": "mat-file", "file": "weights.mat", "key": "W"}
//	}
//
// Combinations expands the cartesian product of all parameter values.
package flavour
