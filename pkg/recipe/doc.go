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

// Package recipe models chefkoch recipes: workflows of nodes that exchange
// named data.
//
// A node binds step inputs to references and publishes step outputs under
// names other nodes can reference:
//
//	{
//	  "nodes": [
//	    {
//	      "name": "rectangle_area",
//	      "inputs": {"d": "flavour.d", "b": "flavour.b"},
//	      "outputs": {"a": "area"},
//	      "stepsource": "rectangle_area.py"
//	    }
//	  ]
//	}
//
// A reference is a published output, a flavour parameter ("flavour.<name>"),
// a sub-recipe (.json) or an existing file. The step source is a Python file,
// a sub-recipe or a built-in (collect).
//
// Read loads a recipe from a file, URL or ConfigMap. InputIntegrity prunes
// nodes whose inputs cannot be computed, FindCycle detects circular data
// flow and Plan groups the nodes into priorities for the scheduler.
package recipe
