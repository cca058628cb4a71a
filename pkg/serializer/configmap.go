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
	"context"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/chefkoch/chefkoch/pkg/defaults"
	"github.com/chefkoch/chefkoch/pkg/header"
	"github.com/chefkoch/chefkoch/pkg/k8s/client"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"
)

const (
	// configMapFieldManager identifies chefkoch as the owner of applied fields.
	configMapFieldManager = "chefkoch"

	configMapFormatKey    = "format"
	configMapTimestampKey = "timestamp"
)

// kubeClientFunc builds the Kubernetes client used for ConfigMap access.
// Tests replace it with a fake clientset.
var kubeClientFunc = func(kubeconfig string) (client.Interface, error) {
	c, _, err := client.GetKubeClientWithConfig(kubeconfig)
	return c, err
}

// ConfigMapWriter writes serialized documents to a Kubernetes ConfigMap.
// The ConfigMap is created if it doesn't exist, or updated if it does.
type ConfigMapWriter struct {
	namespace  string
	name       string
	format     Format
	kubeconfig string
}

// NewConfigMapWriter creates a writer for namespace/name in the given format.
func NewConfigMapWriter(namespace, name string, format Format) *ConfigMapWriter {
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    normalize(format),
	}
}

// WithKubeconfig sets an explicit kubeconfig path for the writer.
func (w *ConfigMapWriter) WithKubeconfig(kubeconfig string) *ConfigMapWriter {
	w.kubeconfig = kubeconfig
	return w
}

// Serialize applies a ConfigMap holding the rendered document. The data key
// is "<kind>.<ext>" (for example "checkresult.json"), next to "format" and
// "timestamp" entries.
func (w *ConfigMapWriter) Serialize(ctx context.Context, doc any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	k8s, err := kubeClientFunc(w.kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to get kubernetes client: %w", err)
	}

	content, err := Marshal(w.format, doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	kind, version, timestamp := "document", "unknown", time.Now().UTC().Format(time.RFC3339)
	if h, ok := doc.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	}); ok && h.GetKind() != "" {
		kind = strings.ToLower(h.GetKind().String())
		md := h.GetMetadata()
		if v := md[kind+"-version"]; v != "" {
			version = v
		}
		if ts := md[kind+"-timestamp"]; ts != "" {
			timestamp = ts
		}
	}

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "chefkoch",
			"app.kubernetes.io/component": kind,
			"app.kubernetes.io/version":   version,
		}).
		WithData(map[string]string{
			kind + w.format.Extension(): string(content),
			configMapFormatKey:          string(w.format),
			configMapTimestampKey:       timestamp,
		})

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format)

	_, err = k8s.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm, metav1.ApplyOptions{
		FieldManager: configMapFieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op; it exists so callers can treat all writers alike.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// readConfigMap returns the document stored in a ConfigMap. When key is
// empty the first data key with a .json, .yaml or .yml extension is used.
func readConfigMap(ctx context.Context, namespace, name, key, kubeconfig string) ([]byte, Format, error) {
	readCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	k8s, err := kubeClientFunc(kubeconfig)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get kubernetes client: %w", err)
	}

	cm, err := k8s.CoreV1().ConfigMaps(namespace).Get(readCtx, name, metav1.GetOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	if key == "" {
		keys := make([]string, 0, len(cm.Data))
		for k := range cm.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			switch strings.ToLower(path.Ext(k)) {
			case ".json", ".yaml", ".yml":
				key = k
			}
			if key != "" {
				break
			}
		}
		if key == "" {
			return nil, "", fmt.Errorf("ConfigMap %s/%s has no json or yaml data key", namespace, name)
		}
	}

	content, ok := cm.Data[key]
	if !ok {
		return nil, "", fmt.Errorf("ConfigMap %s/%s has no data key %q", namespace, name, key)
	}

	format := FormatFromPath(key)
	if f := Format(cm.Data[configMapFormatKey]); f == FormatJSON || f == FormatYAML {
		format = f
	}
	return []byte(content), format, nil
}

// parseConfigMapURI parses cm://namespace/name[/key].
func parseConfigMapURI(uri string) (namespace, name, key string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 3)
	if len(parts) < 2 {
		return "", "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace, name = parts[0], parts[1]
	if namespace == "" {
		return "", "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	if len(parts) == 3 {
		key = parts[2]
		if key == "" {
			return "", "", "", fmt.Errorf("invalid ConfigMap URI: key cannot be empty")
		}
	}
	return namespace, name, key, nil
}
