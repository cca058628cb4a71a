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

package server

import (
	"net/http"
	"time"

	cerrors "github.com/chefkoch/chefkoch/pkg/errors"
	"github.com/chefkoch/chefkoch/pkg/serializer"
)

const (
	healthStatusHealthy  = "healthy"
	healthStatusReady    = "ready"
	healthStatusNotReady = "not_ready"
)

// HealthResponse is the body of /health and /ready.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Name      string    `json:"name" yaml:"name"`
	Version   string    `json:"version" yaml:"version"`
	Uptime    string    `json:"uptime" yaml:"uptime"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func (s *Server) health(status, reason string) HealthResponse {
	now := time.Now()
	return HealthResponse{
		Status:    status,
		Name:      s.config.Name,
		Version:   s.config.Version,
		Uptime:    now.Sub(s.started).Truncate(time.Second).String(),
		Timestamp: now.UTC(),
		Reason:    reason,
	}
}

// requireGet answers 405 for anything but GET and reports whether the
// request may proceed.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	WriteError(w, r, http.StatusMethodNotAllowed, cerrors.ErrCodeMethodNotAllowed,
		"method not allowed", false, map[string]any{"method": r.Method})
	return false
}

// handleHealth handles GET /health. The process is healthy while it serves.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.health(healthStatusHealthy, ""))
}

// handleReady handles GET /ready. It reports 503 until the listener is up
// and again once shutdown has begun.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	if !s.isReady() {
		serializer.RespondJSON(w, http.StatusServiceUnavailable,
			s.health(healthStatusNotReady, "service is starting or shutting down"))
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.health(healthStatusReady, ""))
}
