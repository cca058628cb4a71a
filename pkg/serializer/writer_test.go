package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cerrors "github.com/chefkoch/chefkoch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type testDoc struct {
	Name   string         `json:"name" yaml:"name"`
	Count  int            `json:"count" yaml:"count"`
	Labels map[string]any `json:"labels,omitempty" yaml:"labels,omitempty"`
	Hidden string         `json:"-" yaml:"-"`
}

func TestFormat_IsUnknown(t *testing.T) {
	for _, f := range SupportedFormats() {
		assert.False(t, Format(f).IsUnknown(), f)
	}
	assert.True(t, Format("xml").IsUnknown())
	assert.True(t, Format("").IsUnknown())
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"recipe.json", FormatJSON},
		{"recipe.JSON", FormatJSON},
		{"flavour.yaml", FormatYAML},
		{"flavour.YML", FormatYAML},
		{"out.txt", FormatTable},
		{"noext", FormatJSON},
		{"https://example.com/r.yaml", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	require.NoError(t, w.Serialize(context.Background(), testDoc{Name: "a", Count: 2}))

	var got testDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "a", got.Name)
	assert.Equal(t, 2, got.Count)
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	require.NoError(t, w.Serialize(context.Background(), testDoc{Name: "b", Count: 3}))

	var got testDoc
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "b", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestWriter_SerializeTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	doc := testDoc{
		Name:   "c",
		Count:  1,
		Labels: map[string]any{"list": []string{"x", "y"}},
		Hidden: "secret",
	}
	require.NoError(t, w.Serialize(context.Background(), doc))

	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "labels.list.[0]")
	assert.Contains(t, out, "labels.list.[1]")
	assert.NotContains(t, out, "secret")
}

func TestWriter_SerializeTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(context.Background(), map[string]any{}))
	assert.Equal(t, "<empty>\n", buf.String())
}

func TestNewWriter_UnknownFormatDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)

	require.NoError(t, w.Serialize(context.Background(), map[string]int{"k": 1}))
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("empty path uses fallback", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := NewFileWriterOrStdout(FormatJSON, "  ", &buf)
		require.NoError(t, err)
		require.NoError(t, w.Serialize(context.Background(), testDoc{Name: "x"}))
		require.NoError(t, Close(w))
		assert.Contains(t, buf.String(), `"name": "x"`)
	})

	t.Run("file path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.yaml")
		w, err := NewFileWriterOrStdout(FormatYAML, path, nil)
		require.NoError(t, err)
		require.NoError(t, w.Serialize(context.Background(), testDoc{Name: "yaml-doc"}))
		require.NoError(t, Close(w))
		require.NoError(t, Close(w))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "name: yaml-doc")
	})

	t.Run("unwritable path is an error", func(t *testing.T) {
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "missing", "out.json")
		_, err := NewFileWriterOrStdout(FormatJSON, path, &buf)
		require.Error(t, err)
		assert.True(t, cerrors.HasCode(err, cerrors.ErrCodeInvalidRequest))
		assert.Empty(t, buf.String())
	})

	t.Run("configmap uri", func(t *testing.T) {
		w, err := NewFileWriterOrStdout(FormatJSON, "cm://ns/name", nil)
		require.NoError(t, err)
		_, ok := w.(*ConfigMapWriter)
		assert.True(t, ok)
	})

	t.Run("bad configmap uri is an error", func(t *testing.T) {
		_, err := NewFileWriterOrStdout(FormatJSON, "cm://only", nil)
		assert.Error(t, err)
	})
}

func TestWriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.txt")
	require.NoError(t, WriteToFile(path, []byte("hello")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	assert.Error(t, WriteToFile(filepath.Join(t.TempDir(), "no", "such"), []byte("x")))
}
