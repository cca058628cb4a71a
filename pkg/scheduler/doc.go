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

// Package scheduler dispatches the jobs of a recipe plan.
//
// Priorities run one after another; the jobs of a priority share a worker
// pool bounded by WithWorkers. A scheduler moves through
//
//	initializing -> preparing-workers -> ready -> working -> done | failed
//
// and is used for a single run. Jobs are handed to an Executor; the default
// Recorder records every job, and optionally its results in a fridge,
// without running the step source.
package scheduler
