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

// Package header provides the common document header for chefkoch output.
//
// Every report the CLI and the API emit (plans, cook reports, check results,
// fridge inventories) embeds a Header inline so documents serialize as:
//
//	kind: CheckResult
//	apiVersion: chefkoch.io/v1alpha1
//	metadata:
//	  checkresult-timestamp: "2025-12-30T10:30:00Z"
//	  checkresult-version: v0.3.0
//
// Use Init to stamp a document:
//
//	var res CheckResult
//	res.Init(header.KindCheckResult, header.APIVersion, version)
package header
