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
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel is the environment variable consulted by SetDefaultStructuredLogger.
const EnvLogLevel = "LOG_LEVEL"

// Verbosity is the log verbosity selected on the command line.
// Higher values log more.
type Verbosity int

const (
	// VerbosityDefault logs warnings and errors only.
	VerbosityDefault Verbosity = iota
	// VerbosityVerbose adds informational messages.
	VerbosityVerbose
	// VerbosityDebug adds debug messages with source locations.
	VerbosityDebug
)

// VerbosityFromFlags resolves the --verbose/--debug switches.
// Debug takes precedence over verbose.
func VerbosityFromFlags(verbose, debug bool) Verbosity {
	switch {
	case debug:
		return VerbosityDebug
	case verbose:
		return VerbosityVerbose
	default:
		return VerbosityDefault
	}
}

// Level returns the slog threshold for v.
func (v Verbosity) Level() slog.Level {
	switch v {
	case VerbosityDebug:
		return slog.LevelDebug
	case VerbosityVerbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// String returns the name of the slog level v maps to.
func (v Verbosity) String() string {
	return strings.ToLower(v.Level().String())
}

// ParseLogLevel converts a level name into a slog.Level.
// Unknown or empty names yield slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStructuredLogger returns a JSON logger writing to stderr, tagged with
// module and version.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return NewStructuredLoggerTo(os.Stderr, module, version, ParseLogLevel(level))
}

// NewStructuredLoggerTo returns a JSON logger writing to w.
// Source locations are added when level is debug.
func NewStructuredLoggerTo(w io.Writer, module, version string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: level <= slog.LevelDebug,
		Level:     level,
	})
	return slog.New(h).With("module", module, "version", version)
}

// SetDefaultStructuredLogger installs a structured logger as the slog default
// using the level named by LOG_LEVEL.
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, os.Getenv(EnvLogLevel))
}

// SetDefaultStructuredLoggerWithLevel installs a structured logger with an
// explicit level as the slog default.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// SetDefaultVerbosity installs a structured logger writing to w whose
// threshold follows the command-line verbosity. A nil w means stderr.
func SetDefaultVerbosity(w io.Writer, module, version string, v Verbosity) {
	if w == nil {
		w = os.Stderr
	}
	slog.SetDefault(NewStructuredLoggerTo(w, module, version, v.Level()))
}

// NewLogLogger returns a standard library logger that writes through the
// default slog handler at level.
func NewLogLogger(level slog.Level) *log.Logger {
	return slog.NewLogLogger(slog.Default().Handler(), level)
}
