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
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/chefkoch/chefkoch/pkg/defaults"
	cerrors "github.com/chefkoch/chefkoch/pkg/errors"
	"github.com/chefkoch/chefkoch/pkg/flavour"
	"github.com/chefkoch/chefkoch/pkg/recipe"
	"github.com/chefkoch/chefkoch/pkg/serializer"
	"github.com/chefkoch/chefkoch/pkg/server"
	"github.com/chefkoch/chefkoch/pkg/validator"
	"gopkg.in/yaml.v3"
)

// Handlers serves the check and plan endpoints.
type Handlers struct {
	version   string
	validator *validator.Validator
}

// NewHandlers returns handlers reporting version in their documents.
// Inputs are never resolved against the server filesystem.
func NewHandlers(version string) *Handlers {
	return &Handlers{
		version: version,
		validator: validator.New(
			validator.WithVersion(version),
			validator.WithIntegrityOptions(recipe.WithFileLookup(false)),
		),
	}
}

// HandleCheck handles POST /v1/check. The body is a recipe or an object
// {"recipe": ..., "flavour": ...}; the response is a CheckResult, also
// when the check fails.
func (h *Handlers) HandleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, cerrors.ErrCodeMethodNotAllowed,
			"method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.CheckHandlerTimeout)
	defer cancel()

	rec, fl, err := decodeRequest(r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to decode request", nil)
		return
	}

	result, err := h.validator.Validate(ctx, rec, fl)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to check recipe", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, result)
}

// HandlePlan handles POST /v1/plan. Nodes with unresolvable inputs are
// pruned before planning; duplicate outputs and circles are rejected.
func (h *Handlers) HandlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, cerrors.ErrCodeMethodNotAllowed,
			"method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	rec, _, err := decodeRequest(r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to decode request", nil)
		return
	}

	report := rec.InputIntegrity(recipe.WithFileLookup(false))
	if report.HasErrors() {
		server.WriteError(w, r, http.StatusUnprocessableEntity, cerrors.ErrCodeInvalidRecipe,
			"recipe has duplicate outputs", false, map[string]any{"errors": report.Errors})
		return
	}
	if len(report.Removed) > 0 {
		slog.Debug("nodes pruned before planning", "removed", report.Removed)
	}

	plan, err := rec.Plan(recipe.WithVersion(h.version))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to plan recipe", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, plan)
}

// decodeRequest reads a JSON or YAML body (by Content-Type) holding a
// recipe, or an envelope with "recipe" and optional "flavour".
func decodeRequest(r *http.Request) (*recipe.Recipe, *flavour.Flavour, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest,
				"request body too large", map[string]any{"limit": tooLarge.Limit})
		}
		return nil, nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "failed to read request body", err)
	}
	if len(body) == 0 {
		return nil, nil, cerrors.New(cerrors.ErrCodeInvalidRequest, "request body is empty")
	}

	var raw any
	if isYAML(r.Header.Get("Content-Type")) {
		if err := yaml.Unmarshal(body, &raw); err != nil {
			return nil, nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "this is no valid YAML document", err)
		}
	} else if err := json.Unmarshal(body, &raw); err != nil {
		return nil, nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "this is no valid JSON document", err)
	}

	top, ok := raw.(map[string]any)
	if !ok {
		return nil, nil, cerrors.New(cerrors.ErrCodeInvalidRequest, "request body must be an object")
	}

	envelope, isEnvelope := top["recipe"]
	if !isEnvelope {
		rec, err := recipe.FromData(top)
		return rec, nil, err
	}

	rec, err := recipe.FromData(envelope)
	if err != nil {
		return nil, nil, err
	}
	var fl *flavour.Flavour
	if data, ok := top["flavour"]; ok && data != nil {
		if fl, err = flavour.FromData(data, flavour.WithFileLookup(false)); err != nil {
			return nil, nil, err
		}
	}
	return rec, fl, nil
}

func isYAML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return true
	default:
		return false
	}
}
