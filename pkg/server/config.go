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

package server

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/chefkoch/chefkoch/pkg/defaults"
	"github.com/chefkoch/chefkoch/pkg/logging"
	"golang.org/x/time/rate"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Additional Handlers to be added to the server, keyed by path
	Handlers map[string]http.HandlerFunc

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Request limits
	MaxRequestBodyBytes int64

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration

	// Logging
	LogLevel slog.Level
}

// NewConfig returns a new Config with defaults overridden from the
// environment (PORT, SHUTDOWN_TIMEOUT_SECONDS, LOG_LEVEL).
func NewConfig() *Config {
	return parseConfig()
}

func parseConfig() *Config {
	cfg := &Config{
		Name:                "server",
		Version:             "undefined",
		Port:                8080,
		RateLimit:           100,
		RateLimitBurst:      200,
		MaxRequestBodyBytes: defaults.MaxRequestBodyBytes,
		ReadTimeout:         defaults.ServerReadTimeout,
		ReadHeaderTimeout:   defaults.ServerReadHeaderTimeout,
		WriteTimeout:        defaults.ServerWriteTimeout,
		IdleTimeout:         defaults.ServerIdleTimeout,
		ShutdownTimeout:     defaults.ServerShutdownTimeout,
		LogLevel:            slog.LevelInfo,
	}

	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil && port > 0 {
		cfg.Port = port
	}

	// match the K8s eviction grace period when set
	if seconds, err := strconv.Atoi(os.Getenv("SHUTDOWN_TIMEOUT_SECONDS")); err == nil && seconds > 0 {
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = logging.ParseLogLevel(level)
	}

	return cfg
}
