/*
Copyright © 2025 The chefkoch Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/chefkoch/chefkoch/pkg/fridge"
)

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "inspect",
		EnableShellCompletion: true,
		Usage:                 "List and verify the items of a fridge",
		Description: `List every shelf and item of a fridge and verify the stored hashes.
Resources whose file changed are stale, resources whose file is gone are
missing, and results depending on either are stale. Without --fridge the
command does nothing.

# Examples

  chefkoch inspect --fridge ./fridge
  chefkoch inspect --fridge ./fridge -t table
  chefkoch inspect --fridge ./fridge --fail-on-stale`,
		Flags: []cli.Flag{
			newFridgeFlag("Directory of the fridge to inspect"),
			&cli.BoolFlag{
				Name:  "fail-on-stale",
				Usage: "Exit with non-zero status if any item is stale or missing",
			},
			newOutputFlag(),
			newFormatFlag(),
		},
		Before: requireNoArgs,
		Action: withSettings(runInspect),
	}
}

func runInspect(ctx context.Context, cmd *cli.Command, _ Settings) error {
	root := cmd.String("fridge")
	if root == "" {
		slog.Debug("no fridge given, nothing to inspect")
		return nil
	}

	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	// inspecting never creates a fridge
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("fridge %q does not exist or is not a directory", root)
	}

	fr, err := fridge.Open(root, fridge.WithVersion(version))
	if err != nil {
		return fmt.Errorf("failed to open fridge %q: %w", root, err)
	}

	inv, err := fr.Inspect(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect fridge %q: %w", root, err)
	}

	if err := writeDocument(ctx, cmd, outFormat, inv); err != nil {
		return fmt.Errorf("failed to serialize inventory: %w", err)
	}

	slog.Info("inspection completed",
		"shelves", inv.Summary.Shelves,
		"items", inv.Summary.Items,
		"stale", inv.Summary.Stale,
		"missing", inv.Summary.Missing)

	if cmd.Bool("fail-on-stale") && inv.Summary.Stale+inv.Summary.Missing > 0 {
		return fmt.Errorf("fridge has %d stale and %d missing item(s)", inv.Summary.Stale, inv.Summary.Missing)
	}
	return nil
}
