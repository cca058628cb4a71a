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

// Package serializer encodes and decodes chefkoch documents.
//
// # Formats
//
//   - JSON: indented, the default for unknown formats and extensions
//   - YAML: gopkg.in/yaml.v3 with two-space indentation
//   - Table: flattened FIELD/VALUE rows keyed by JSON names (write-only)
//
// # Locations
//
// Documents are loaded with Load from a local path, an http(s) URL or a
// Kubernetes ConfigMap URI:
//
//	cm://namespace/name        first .json/.yaml/.yml data key
//	cm://namespace/name/key    explicit data key
//
// Output goes through NewFileWriterOrStdout, which writes to a file, to a
// ConfigMap (server-side apply) or to the supplied fallback writer:
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path, os.Stdout)
//	if err != nil {
//		return err
//	}
//	defer serializer.Close(w)
//	if err := w.Serialize(ctx, doc); err != nil {
//		return err
//	}
//
// HTTP handlers use RespondJSON, which encodes the body before writing headers.
package serializer
