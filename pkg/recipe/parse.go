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

package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	cerrors "github.com/chefkoch/chefkoch/pkg/errors"
	"github.com/chefkoch/chefkoch/pkg/serializer"
	"github.com/chefkoch/chefkoch/pkg/suggest"
	"gopkg.in/yaml.v3"
)

const (
	msgNotObject    = "recipe data must be an object"
	msgParseFailure = "error while parsing json data into recipe object"
	msgBadLocation  = "the file path or file name is incorrect"
	msgInvalidJSON  = "this is no valid JSON file, try deleting comments"
	msgInvalidYAML  = "this is no valid YAML file"
)

// Read loads and parses the recipe at uri (file, http(s) URL or cm:// URI).
func Read(ctx context.Context, uri, kubeconfig string) (*Recipe, error) {
	start := time.Now()
	defer func() {
		recipeReadDuration.Observe(time.Since(start).Seconds())
	}()

	src, err := serializer.Load(ctx, uri, kubeconfig)
	if err != nil {
		recipeReadErrors.Inc()
		if cerrors.HasCode(err, cerrors.ErrCodeNotFound) {
			return nil, cerrors.WrapWithContext(cerrors.ErrCodeNotFound, msgBadLocation, err,
				map[string]any{"uri": uri})
		}
		return nil, err
	}

	r, err := Parse(src.Data, src.Format)
	if err != nil {
		recipeReadErrors.Inc()
		return nil, err
	}
	r.Source = src.URI

	slog.Debug("recipe loaded", "uri", src.URI, "nodes", len(r.Nodes))
	return r, nil
}

// Parse decodes data in format and builds a recipe from it.
func Parse(data []byte, format serializer.Format) (*Recipe, error) {
	var raw any
	switch format {
	case serializer.FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, msgInvalidYAML, err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, msgInvalidJSON, err)
		}
	}
	return FromData(raw)
}

// FromData builds a recipe from generically decoded JSON or YAML.
// Unknown fields are ignored.
func FromData(data any) (*Recipe, error) {
	top, ok := data.(map[string]any)
	if !ok {
		return nil, cerrors.New(cerrors.ErrCodeInvalidRecipe, msgNotObject)
	}

	rawNodes, ok := top["nodes"].([]any)
	if !ok {
		return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRecipe, msgParseFailure,
			map[string]any{"reason": "nodes must be a list"})
	}

	r := &Recipe{Nodes: make([]Node, 0, len(rawNodes))}
	for i, raw := range rawNodes {
		n, err := nodeFromData(raw)
		if err != nil {
			return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRecipe, err.Error(),
				map[string]any{"index": i})
		}
		r.Nodes = append(r.Nodes, n)
	}
	return r, nil
}

func nodeFromData(raw any) (Node, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return Node{}, fmt.Errorf("%s: node must be an object", msgParseFailure)
	}
	for _, field := range []string{"name", "inputs", "outputs", "stepsource"} {
		if _, ok := m[field]; !ok {
			return Node{}, fmt.Errorf("%s: missing field %q", msgParseFailure, field)
		}
	}

	name, ok := m["name"].(string)
	if !ok {
		return Node{}, fmt.Errorf("the name of a node must be a string")
	}
	if name == "" {
		return Node{}, fmt.Errorf("the name of a node must not be empty")
	}
	if !isASCII(name) {
		return Node{}, fmt.Errorf("the name of node %q must be ascii", name)
	}

	rawInputs, ok := m["inputs"].(map[string]any)
	if !ok {
		return Node{}, fmt.Errorf(`the input of node %s must be of the format {"name as in step": value, ...}`, name)
	}
	inputs := make(map[string]Input, len(rawInputs))
	for key, v := range rawInputs {
		in, err := toInput(v)
		if err != nil {
			return Node{}, fmt.Errorf("input %s of node %s: %w", key, name, err)
		}
		inputs[key] = in
	}

	rawOutputs, ok := m["outputs"].(map[string]any)
	if !ok {
		return Node{}, fmt.Errorf(`the output of node %s must be of the format {"name as in step": value, ...}`, name)
	}
	outputs := make(map[string]string, len(rawOutputs))
	for key, v := range rawOutputs {
		s, ok := v.(string)
		if !ok || s == "" {
			return Node{}, fmt.Errorf("output %s of node %s must be a non-empty string", key, name)
		}
		outputs[key] = s
	}

	step, ok := m["stepsource"].(string)
	if !ok || KindOf(step) == StepKindUnknown {
		msg := fmt.Sprintf("stepsource to node %s: %v, must be a python file, another recipe or a built-in function",
			name, m["stepsource"])
		if hint := suggest.DidYouMean(step, BuiltIns); hint != "" {
			msg += " (" + hint + ")"
		}
		return Node{}, fmt.Errorf("%s", msg)
	}

	return Node{
		Name:       name,
		Inputs:     inputs,
		Outputs:    outputs,
		StepSource: step,
	}, nil
}

func toInput(v any) (Input, error) {
	switch t := v.(type) {
	case string:
		return Input{t}, nil
	case []any:
		in := make(Input, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("reference list entries must be strings, got %T", e)
			}
			in = append(in, s)
		}
		return in, nil
	default:
		return nil, fmt.Errorf("reference must be a string or a list of strings, got %T", v)
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
