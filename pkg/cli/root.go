/*
Copyright © 2025 The chefkoch Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/chefkoch/chefkoch/pkg/suggest"
)

const (
	name           = "chefkoch"
	versionDefault = "dev"

	envVerbose = "CHEFKOCH_VERBOSE"
	envDebug   = "CHEFKOCH_DEBUG"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the chefkoch command line and exits the process with 1 on
// any error. SIGINT and SIGTERM cancel the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "a compute cluster cuisine",
		EnableShellCompletion: true,
		HideVersion:           true,
		Description: fmt.Sprintf(`chefkoch - a compute cluster cuisine

Version: %s
Commit:  %s
Built:   %s

Recipes describe a simulation as nodes exchanging named data, flavours
hold the parameters the simulation is cooked with:

check   - checks a recipe (and flavour) for consistency
cook    - plans a recipe and records its jobs (and results in a fridge)
inspect - lists and verifies the items of a fridge
read    - reads and describes a recipe or flavour file`, version, commit, date),
		Flags: []cli.Flag{
			newVerboseFlag(),
			newDebugFlag(),
		},
		Commands: []*cli.Command{
			cookCmd(),
			checkCmd(),
			inspectCmd(),
			versionCmd(),
			helloCmd(),
			pythonCmd(),
			readCmd(),
			echoCmd(),
		},
		Action: rootAction,
	}
}

// rootAction runs when no subcommand matched: no arguments print help,
// anything else is an unknown command.
func rootAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return cli.ShowAppHelp(cmd)
	}
	return unknownCommandError(cmd, cmd.Args().First())
}

func unknownCommandError(cmd *cli.Command, token string) error {
	names := make([]string, 0, len(cmd.Commands))
	for _, c := range cmd.Commands {
		if !c.Hidden {
			names = append(names, c.Name)
			names = append(names, c.Aliases...)
		}
	}
	msg := fmt.Sprintf("unknown command %q", token)
	if hint := suggest.DidYouMean(token, names); hint != "" {
		msg += ", " + hint
	}
	return fmt.Errorf("%s (run '%s --help' for usage)", msg, name)
}
