/*
Copyright © 2025 The chefkoch Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/chefkoch/chefkoch/pkg/logging"
	"github.com/chefkoch/chefkoch/pkg/serializer"
)

// Settings holds the global switches of one invocation.
type Settings struct {
	Verbose bool
	Debug   bool
}

// Verbosity returns the log verbosity the switches select.
func (s Settings) Verbosity() logging.Verbosity {
	return logging.VerbosityFromFlags(s.Verbose, s.Debug)
}

// settingsFrom reads the global switches. Flag and environment values are
// merged by the flag sources, so either one turns a switch on.
func settingsFrom(cmd *cli.Command) Settings {
	return Settings{
		Verbose: cmd.Bool("verbose"),
		Debug:   cmd.Bool("debug"),
	}
}

// handlerFunc is a command action receiving the resolved global settings.
type handlerFunc func(ctx context.Context, cmd *cli.Command, s Settings) error

// withSettings resolves the settings, configures the process logger and
// calls fn.
func withSettings(fn handlerFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		s := settingsFrom(cmd)
		configureLogging(cmd, s)
		return fn(ctx, cmd, s)
	}
}

func configureLogging(cmd *cli.Command, s Settings) {
	logging.SetDefaultVerbosity(errWriter(cmd), name, version, s.Verbosity())
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"command", cmd.Name,
		"verbosity", s.Verbosity().String())
}

// requireNoArgs is the Before hook of commands taking flags only.
func requireNoArgs(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if args := cmd.Args(); args.Len() > 0 {
		return ctx, fmt.Errorf("%s accepts no arguments, got %q (run '%s %s --help' for usage)",
			cmd.Name, args.Slice(), name, cmd.Name)
	}
	return ctx, nil
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

func newVerboseFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Log informational messages",
		Sources: cli.EnvVars(envVerbose),
	}
}

func newDebugFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"d"},
		Usage:   "Log debug messages with source locations",
		Sources: cli.EnvVars(envDebug),
	}
}

func newOutputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output destination: file path or ConfigMap URI (cm://namespace/name). Default: stdout",
	}
}

func newFormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func newKubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "Path to kubeconfig file used for ConfigMap URIs (overrides KUBECONFIG env)",
	}
}

func newRecipeFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:    "recipe",
		Aliases: []string{"r"},
		Usage: usage + `
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`,
	}
}

func newFlavourFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "flavour",
		Aliases: []string{"f"},
		Usage: `Path/URI to the flavour holding the parameters the recipe references.
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`,
	}
}

func newFridgeFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:  "fridge",
		Usage: usage,
	}
}

// parseOutputFormat extracts and validates the output format from CLI flags.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: %s",
			outFormat, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return outFormat, nil
}

// writeDocument serializes doc to --output, or to the command writer.
func writeDocument(ctx context.Context, cmd *cli.Command, format serializer.Format, doc any) error {
	ser, err := serializer.NewFileWriterOrStdout(format, cmd.String("output"), outWriter(cmd))
	if err != nil {
		return err
	}
	defer func() {
		if err := serializer.Close(ser); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return ser.Serialize(ctx, doc)
}

// baseDir returns the directory relative step inputs of a local document
// are resolved against; remote documents resolve against the working
// directory.
func baseDir(uri string) string {
	if uri == "" || serializer.IsRemote(uri) || strings.HasPrefix(uri, serializer.ConfigMapURIScheme) {
		return ""
	}
	return filepath.Dir(uri)
}
