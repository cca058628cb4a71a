package server

import (
	"log/slog"
	"testing"
	"time"

	"github.com/chefkoch/chefkoch/pkg/defaults"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		port     int
		shutdown time.Duration
		level    slog.Level
	}{
		{
			name:     "defaults",
			port:     8080,
			shutdown: defaults.ServerShutdownTimeout,
			level:    slog.LevelInfo,
		},
		{
			name:     "overrides",
			env:      map[string]string{"PORT": "9000", "SHUTDOWN_TIMEOUT_SECONDS": "5", "LOG_LEVEL": "debug"},
			port:     9000,
			shutdown: 5 * time.Second,
			level:    slog.LevelDebug,
		},
		{
			name:     "invalid values ignored",
			env:      map[string]string{"PORT": "abc", "SHUTDOWN_TIMEOUT_SECONDS": "-1"},
			port:     8080,
			shutdown: defaults.ServerShutdownTimeout,
			level:    slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"PORT", "SHUTDOWN_TIMEOUT_SECONDS", "LOG_LEVEL"} {
				t.Setenv(k, tt.env[k])
			}

			cfg := parseConfig()
			if cfg.Port != tt.port {
				t.Errorf("Port = %d, want %d", cfg.Port, tt.port)
			}
			if cfg.ShutdownTimeout != tt.shutdown {
				t.Errorf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, tt.shutdown)
			}
			if cfg.LogLevel != tt.level {
				t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, tt.level)
			}
			if cfg.MaxRequestBodyBytes != defaults.MaxRequestBodyBytes {
				t.Errorf("MaxRequestBodyBytes = %d", cfg.MaxRequestBodyBytes)
			}
		})
	}
}
