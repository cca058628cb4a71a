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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	cerrors "github.com/chefkoch/chefkoch/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Source is a document fetched from a file, URL or ConfigMap together with
// the format it is encoded in.
type Source struct {
	URI    string
	Format Format
	Data   []byte
}

// IsRemote reports whether uri is an http(s) URL.
func IsRemote(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")
}

// Load fetches the document at uri. Supported locations are local paths,
// http(s) URLs and ConfigMap URIs (cm://namespace/name[/key]). The kubeconfig
// is only consulted for ConfigMap URIs. A missing local file yields a
// NOT_FOUND structured error.
func Load(ctx context.Context, uri, kubeconfig string) (*Source, error) {
	trimmed := strings.TrimSpace(uri)
	if trimmed == "" {
		return nil, cerrors.New(cerrors.ErrCodeInvalidRequest, "location is empty")
	}

	switch {
	case strings.HasPrefix(trimmed, ConfigMapURIScheme):
		namespace, name, key, err := parseConfigMapURI(trimmed)
		if err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "invalid ConfigMap URI", err)
		}
		data, format, err := readConfigMap(ctx, namespace, name, key, kubeconfig)
		if err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeUnavailable, "failed to read ConfigMap", err)
		}
		return &Source{URI: trimmed, Format: format, Data: data}, nil
	case IsRemote(trimmed):
		data, err := NewHttpReader().ReadWithContext(ctx, trimmed)
		if err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeUnavailable, "failed to download remote file", err)
		}
		return &Source{URI: trimmed, Format: FormatFromPath(trimmed), Data: data}, nil
	default:
		data, err := os.ReadFile(trimmed)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, cerrors.WrapWithContext(cerrors.ErrCodeNotFound, "file not found", err,
					map[string]any{"path": trimmed})
			}
			return nil, cerrors.Wrap(cerrors.ErrCodeInternal, "failed to read file", err)
		}
		return &Source{URI: trimmed, Format: FormatFromPath(trimmed), Data: data}, nil
	}
}

// Decode unmarshals the source data into v.
func (s *Source) Decode(v any) error {
	r, err := NewReader(s.Format, bytes.NewReader(s.Data))
	if err != nil {
		return err
	}
	return r.Deserialize(v)
}

// Reader deserializes JSON or YAML documents from an io.Reader.
// Table format is write-only.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a Reader for format. If input implements io.Closer it is
// closed by Reader.Close.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	return r, nil
}

// Deserialize decodes a single document into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil || r.input == nil {
		return fmt.Errorf("reader has no input")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
	return nil
}

// Close releases the underlying input if it is closeable. Safe to call more than once.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// FromFile loads and decodes the document at path into a new T.
func FromFile[T any](ctx context.Context, path string) (*T, error) {
	return FromFileWithKubeconfig[T](ctx, path, "")
}

// FromFileWithKubeconfig is FromFile with an explicit kubeconfig for ConfigMap URIs.
func FromFileWithKubeconfig[T any](ctx context.Context, path, kubeconfig string) (*T, error) {
	src, err := Load(ctx, path, kubeconfig)
	if err != nil {
		return nil, err
	}
	var v T
	if err := src.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to deserialize %s: %w", path, err)
	}
	return &v, nil
}
