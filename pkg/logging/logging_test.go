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

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerbosityFromFlags(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		debug   bool
		want    Verbosity
		level   slog.Level
	}{
		{"neither", false, false, VerbosityDefault, slog.LevelWarn},
		{"verbose", true, false, VerbosityVerbose, slog.LevelInfo},
		{"debug", false, true, VerbosityDebug, slog.LevelDebug},
		{"both", true, true, VerbosityDebug, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerbosityFromFlags(tt.verbose, tt.debug)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.level, got.Level())
		})
	}
}

func TestVerbosityOrdering(t *testing.T) {
	// debug <= verbose <= default for every flag combination
	for _, verbose := range []bool{false, true} {
		debugLevel := VerbosityFromFlags(verbose, true).Level()
		verboseLevel := VerbosityFromFlags(true, false).Level()
		defaultLevel := VerbosityFromFlags(false, false).Level()
		assert.LessOrEqual(t, debugLevel, verboseLevel)
		assert.LessOrEqual(t, verboseLevel, defaultLevel)
	}
}

func TestVerbosityString(t *testing.T) {
	assert.Equal(t, "warn", VerbosityDefault.String())
	assert.Equal(t, "info", VerbosityVerbose.String())
	assert.Equal(t, "debug", VerbosityDebug.String())
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		" Error ": slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), "input %q", in)
	}
}

func TestNewStructuredLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLoggerTo(&buf, "chefkoch", "v1.2.3", slog.LevelWarn)

	logger.Info("dropped")
	assert.Zero(t, buf.Len(), "info must be filtered at warn level")

	logger.Warn("kept", "node", "A")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "chefkoch", rec["module"])
	assert.Equal(t, "v1.2.3", rec["version"])
	assert.Equal(t, "A", rec["node"])
	assert.NotContains(t, rec, "source")
}

func TestNewStructuredLoggerToDebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLoggerTo(&buf, "chefkoch", "dev", slog.LevelDebug)
	logger.Debug("trace")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Contains(t, rec, "source")
}

func TestSetDefaultVerbosity(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	SetDefaultVerbosity(&buf, "chefkoch", "dev", VerbosityDefault)
	slog.Info("dropped")
	assert.Zero(t, buf.Len())

	SetDefaultVerbosity(&buf, "chefkoch", "dev", VerbosityDebug)
	slog.Debug("kept")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "chefkoch", rec["module"])
}
