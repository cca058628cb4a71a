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

// Package server provides the HTTP server shared by chefkoch services.
//
// The server is stateless. Every API handler registered with WithHandler is
// wrapped in a middleware chain:
//
//   - Prometheus request metrics (chefkoch_http_*)
//   - API version negotiation via Accept: application/vnd.chefkoch.v1+json,
//     reported in X-API-Version
//   - request ID tracking through X-Request-Id (UUID, generated when absent
//     or invalid)
//   - panic recovery
//   - token bucket rate limiting (golang.org/x/time/rate) with
//     X-RateLimit-* and Retry-After headers
//   - request body size limit
//   - debug request logging
//
// System endpoints bypass the chain:
//
//	GET /health   liveness, always 200
//	GET /ready    readiness, 503 until the listener is up and during shutdown
//	GET /metrics  Prometheus exposition
//
// GET / lists the registered routes unless a custom root handler is given.
//
// # Usage
//
//	s := server.New(
//		server.WithName("chefkochd"),
//		server.WithVersion(version),
//		server.WithHandler(map[string]http.HandlerFunc{
//			"/v1/check": handleCheck,
//		}),
//	)
//	if err := s.Run(ctx); err != nil {
//		return err
//	}
//
// # Configuration
//
// NewConfig reads PORT, SHUTDOWN_TIMEOUT_SECONDS and LOG_LEVEL from the
// environment.
//
// # Errors
//
// Error responses share one shape:
//
//	{
//	  "code": "INVALID_REQUEST",
//	  "message": "...",
//	  "details": {...},
//	  "requestId": "...",
//	  "timestamp": "...",
//	  "retryable": false
//	}
//
// WriteErrorFromErr maps pkg/errors codes to HTTP status codes.
package server
