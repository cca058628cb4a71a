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

// Package fridge stores the items of a cooking run: the resources a step
// reads and the results it produces, each identified by a SHA-256 hash.
//
// Layout:
//
//	<root>/<shelf>/<hash>.json     item record
//	<root>/<shelf>/<resource>      optional symlink to the resource
//
// A shelf holds the items of one recipe node. Inspect walks all shelves and
// verifies every hash so changed inputs show up as stale.
package fridge
