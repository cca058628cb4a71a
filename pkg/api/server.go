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

package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/chefkoch/chefkoch/pkg/logging"
	"github.com/chefkoch/chefkoch/pkg/server"
)

const (
	name           = "chefkochd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/chefkoch/chefkoch/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Routes returns the API handlers keyed by path.
func Routes(h *Handlers) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/check": h.HandleCheck,
		"/v1/plan":  h.HandlePlan,
	}
}

// Serve starts the API server and blocks until shutdown.
func Serve(ctx context.Context) error {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, os.Getenv("LOG_LEVEL"))
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(Routes(NewHandlers(version))),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
