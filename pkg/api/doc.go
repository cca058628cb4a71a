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

// Package api wires the chefkoch HTTP API onto pkg/server.
//
// # Usage
//
//	if err := api.Serve(ctx); err != nil {
//		log.Fatalf("server error: %v", err)
//	}
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - POST /v1/check - check a recipe and optional flavour, returns a CheckResult
//   - POST /v1/plan  - prune and plan a recipe, returns a Plan
//
// System endpoints:
//   - GET /health, GET /ready, GET /metrics
//
// # Request Body
//
// Either a recipe document or an envelope holding both documents. JSON is
// the default; application/yaml (or application/x-yaml) selects YAML.
//
//	{
//	  "recipe": {"nodes": [...]},
//	  "flavour": {"average": [1, 16, 64]}
//	}
//
// Example:
//
//	curl -X POST http://localhost:8080/v1/check \
//	  -H "Content-Type: application/json" \
//	  -d @recipe.json
//
// Step inputs naming files are not looked up on the server; only published
// outputs, flavour parameters and sub-recipes count as resolvable.
//
// # Configuration
//
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: logging level (debug, info, warn, error)
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown limit
package api
