// Package logging provides structured logging utilities for chefkoch.
//
// It wraps log/slog with JSON output on stderr, module/version attributes
// on every record and source locations for debug logs.
//
// # Verbosity
//
// The CLI exposes two switches, resolved with VerbosityFromFlags:
//
//	--debug    -> DEBUG
//	--verbose  -> INFO
//	(neither)  -> WARN
//
// Debug always wins over verbose, so the threshold for --debug is never
// above the one for --verbose, which is never above the default.
//
// # Usage
//
//	v := logging.VerbosityFromFlags(verbose, debug)
//	logging.SetDefaultVerbosity(os.Stderr, "chefkoch", version, v)
//	slog.Info("recipe loaded", "nodes", len(r.Nodes))
//
// Long-running services read the LOG_LEVEL environment variable instead:
//
//	logging.SetDefaultStructuredLogger("chefkochd", version)
package logging
