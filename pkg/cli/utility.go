/*
Copyright © 2025 The chefkoch Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"
)

const licenseLine = "Licensed under the Apache License, Version 2.0"

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Print version and license",
		Before: requireNoArgs,
		Action: withSettings(runVersion),
	}
}

func runVersion(_ context.Context, cmd *cli.Command, _ Settings) error {
	_, err := fmt.Fprintf(outWriter(cmd), "%s %s\ncommit: %s\nbuilt:  %s\n%s\n",
		name, version, commit, date, licenseLine)
	return err
}

var (
	greetingLanguages = []language.Tag{language.English, language.German}
	greetingMatcher   = language.NewMatcher(greetingLanguages)
	greetings         = map[language.Tag]string{
		language.English: "Hello, I am chefkoch, your compute cluster cuisine!",
		language.German:  "Hallo, ich bin chefkoch, deine Rechencluster-Küche!",
	}
)

func helloCmd() *cli.Command {
	return &cli.Command{
		Name:  "hello",
		Usage: "Print a greeting",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Language of the greeting as BCP 47 tag (en, de); unsupported languages fall back to English",
				Value: "en",
			},
		},
		Before: requireNoArgs,
		Action: withSettings(runHello),
	}
}

func runHello(_ context.Context, cmd *cli.Command, _ Settings) error {
	_, err := fmt.Fprintln(outWriter(cmd), greeting(cmd.String("lang")))
	return err
}

// greeting returns the greeting in the closest supported language.
func greeting(lang string) string {
	tag, _ := language.MatchStrings(greetingMatcher, lang)
	base, _ := tag.Base()
	for _, supported := range greetingLanguages {
		if b, _ := supported.Base(); b == base {
			return greetings[supported]
		}
	}
	return greetings[language.English]
}

func pythonCmd() *cli.Command {
	return &cli.Command{
		Name:    "python",
		Aliases: []string{"runtime"},
		Usage:   "Print the runtime version the binary was built with",
		Before:  requireNoArgs,
		Action:  withSettings(runPython),
	}
}

func runtimeVersion() string {
	return fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func runPython(_ context.Context, cmd *cli.Command, _ Settings) error {
	_, err := fmt.Fprintln(outWriter(cmd), runtimeVersion())
	return err
}

func echoCmd() *cli.Command {
	return &cli.Command{
		Name:      "echo",
		Usage:     "Print both arguments separated by a space",
		ArgsUsage: "<text1> <text2>",
		Action:    withSettings(runEcho),
	}
}

func runEcho(_ context.Context, cmd *cli.Command, _ Settings) error {
	args := cmd.Args()
	if args.Len() != 2 {
		return fmt.Errorf("echo requires 2 arguments <text1> <text2>, got %d", args.Len())
	}
	_, err := fmt.Fprintf(outWriter(cmd), "%s %s\n", args.Get(0), args.Get(1))
	return err
}
