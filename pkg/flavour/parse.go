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

package flavour

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	cerrors "github.com/chefkoch/chefkoch/pkg/errors"
	"github.com/chefkoch/chefkoch/pkg/serializer"
	"gopkg.in/yaml.v3"
)

const (
	entryTypeRange   = "range"
	entryTypeMatFile = "mat-file"

	// maxRangeValues bounds a single range expansion.
	maxRangeValues = 1_000_000

	msgNotObject   = "flavour data must be an object"
	msgUnsupported = "the flavour file holds an entry that is not supported"
	msgBadLocation = "the file path or file name is incorrect"
)

// Option configures parsing.
type Option func(*parseConfig)

type parseConfig struct {
	baseDir    string
	fileLookup bool
}

// WithBaseDir resolves relative mat-file paths against dir.
func WithBaseDir(dir string) Option {
	return func(c *parseConfig) {
		c.baseDir = dir
	}
}

// WithFileLookup toggles checking that mat-files exist. Without lookup
// every mat-file entry is kept as given and never touches the filesystem.
func WithFileLookup(enabled bool) Option {
	return func(c *parseConfig) {
		c.fileLookup = enabled
	}
}

// Read loads and parses the flavour at uri. Relative mat-file paths of a
// local flavour resolve against the flavour's directory.
func Read(ctx context.Context, uri, kubeconfig string, opts ...Option) (*Flavour, error) {
	src, err := serializer.Load(ctx, uri, kubeconfig)
	if err != nil {
		if cerrors.HasCode(err, cerrors.ErrCodeNotFound) {
			return nil, cerrors.WrapWithContext(cerrors.ErrCodeNotFound, msgBadLocation, err,
				map[string]any{"uri": uri})
		}
		return nil, err
	}

	if !serializer.IsRemote(src.URI) && !isConfigMap(src.URI) {
		opts = append([]Option{WithBaseDir(filepath.Dir(src.URI))}, opts...)
	}

	f, err := Parse(src.Data, src.Format, opts...)
	if err != nil {
		return nil, err
	}
	f.Source = src.URI
	flavoursRead.Inc()
	return f, nil
}

func isConfigMap(uri string) bool {
	return strings.HasPrefix(uri, serializer.ConfigMapURIScheme)
}

// Parse decodes data in format and builds a flavour from it.
func Parse(data []byte, format serializer.Format, opts ...Option) (*Flavour, error) {
	var raw any
	switch format {
	case serializer.FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "this is no valid YAML file", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "this is no valid JSON file, try deleting comments", err)
		}
	}
	return FromData(raw, opts...)
}

// FromData builds a flavour from generically decoded JSON or YAML. Each
// top-level key is a parameter; its entry is a scalar, a range object, a
// mat-file object or a list of those. Mat-files that do not exist are
// skipped with a warning.
func FromData(data any, opts ...Option) (*Flavour, error) {
	cfg := parseConfig{fileLookup: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	top, ok := data.(map[string]any)
	if !ok {
		return nil, cerrors.New(cerrors.ErrCodeInvalidRequest, msgNotObject)
	}

	f := New()
	for name, entry := range top {
		p := &Param{Name: name}
		entries, isList := entry.([]any)
		if !isList {
			entries = []any{entry}
		}
		for _, e := range entries {
			if err := p.appendEntry(e, &cfg, f); err != nil {
				return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest,
					fmt.Sprintf("parameter %s: %v", name, err), map[string]any{"param": name})
			}
		}
		f.Params[name] = p
	}
	return f, nil
}

func (p *Param) appendEntry(entry any, cfg *parseConfig, f *Flavour) error {
	switch v := entry.(type) {
	case string, bool:
		p.Values = append(p.Values, v)
	case float64, int, int64, uint64:
		p.Values = append(p.Values, normalizeNumber(v))
	case map[string]any:
		typ, _ := v["type"].(string)
		switch typ {
		case entryTypeRange:
			values, err := expandRange(v)
			if err != nil {
				return err
			}
			p.Values = append(p.Values, values...)
		case entryTypeMatFile:
			fv, ok, err := fileValue(v, cfg)
			if err != nil {
				return err
			}
			if !ok {
				msg := fmt.Sprintf("the file %s of parameter %s does not exist and is not included", fv.File, p.Name)
				slog.Warn(msg)
				f.Warnings = append(f.Warnings, msg)
				return nil
			}
			p.Values = append(p.Values, fv)
		default:
			return fmt.Errorf("%s: unknown type %q", msgUnsupported, typ)
		}
	default:
		return fmt.Errorf("%s: %T", msgUnsupported, entry)
	}
	return nil
}

func fileValue(m map[string]any, cfg *parseConfig) (FileValue, bool, error) {
	file, okFile := m["file"].(string)
	key, okKey := m["key"].(string)
	if !okFile || !okKey || file == "" {
		return FileValue{}, false, fmt.Errorf("either the file or the key field of the entry is missing")
	}

	fv := FileValue{Type: entryTypeMatFile, File: file, Key: key}
	if !cfg.fileLookup {
		return fv, true, nil
	}
	path := file
	if cfg.baseDir != "" && !filepath.IsAbs(file) {
		path = filepath.Join(cfg.baseDir, file)
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fv, false, nil
	}
	return fv, true, nil
}

// expandRange lists start, start+step, ... up to and including stop.
func expandRange(m map[string]any) ([]any, error) {
	start, okStart := number(m["start"])
	stop, okStop := number(m["stop"])
	step, okStep := number(m["step"])
	if !okStart || !okStop || !okStep {
		return nil, fmt.Errorf("range needs numeric start, stop and step")
	}
	if step <= 0 {
		return nil, fmt.Errorf("range step must be positive, got %v", step)
	}
	if stop < start {
		return nil, nil
	}

	steps := math.Floor((stop-start)/step + 1e-9)
	if math.IsNaN(steps) || math.IsInf(steps, 0) || steps+1 > maxRangeValues {
		return nil, fmt.Errorf("range expands to more than %d values", maxRangeValues)
	}
	n := int(steps) + 1

	values := make([]any, 0, n)
	for i := 0; i < n; i++ {
		v := start + float64(i)*step
		values = append(values, normalizeNumber(math.Round(v*1e12)/1e12))
	}
	return values, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// normalizeNumber turns integral numbers into int and keeps the rest float64,
// so JSON and YAML sources produce the same values.
func normalizeNumber(v any) any {
	f, ok := number(v)
	if !ok {
		return v
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int(f)
	}
	return f
}
