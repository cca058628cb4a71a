/*
Copyright © 2025 The chefkoch Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/chefkoch/chefkoch/pkg/flavour"
	"github.com/chefkoch/chefkoch/pkg/recipe"
	"github.com/chefkoch/chefkoch/pkg/suggest"
)

const (
	fileTypeRecipe  = "recipe"
	fileTypeFlavour = "flavour"
)

var fileTypes = []string{fileTypeRecipe, fileTypeFlavour}

func readCmd() *cli.Command {
	return &cli.Command{
		Name:                  "read",
		EnableShellCompletion: true,
		Usage:                 "Read and describe a recipe or flavour file",
		ArgsUsage:             "<recipe|flavour> <filepath>",
		Description: `Read a recipe or flavour and print its description. Recipes are also
checked: duplicate outputs and circles fail, nodes with inputs that cannot
be computed are reported.

The file path may be a local file, an HTTP/HTTPS URL or a ConfigMap URI
(cm://namespace/name). The format follows the extension (.json, .yaml,
.yml); anything else is read as JSON.

# Examples

  chefkoch read recipe recipe.json
  chefkoch read flavour flavour.yaml`,
		Flags: []cli.Flag{
			newKubeconfigFlag(),
		},
		Before: validateReadArgs,
		Action: withSettings(runRead),
	}
}

// validateReadArgs rejects the invocation before any file is touched.
func validateReadArgs(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	args := cmd.Args()
	if args.Len() != 2 {
		return ctx, fmt.Errorf("read requires 2 arguments <recipe|flavour> <filepath>, got %d", args.Len())
	}
	if ft := args.Get(0); !slices.Contains(fileTypes, ft) {
		msg := fmt.Sprintf("invalid filetype %q, must be one of: recipe, flavour", ft)
		if hint := suggest.DidYouMean(ft, fileTypes); hint != "" {
			msg += ", " + hint
		}
		return ctx, errors.New(msg)
	}
	return ctx, nil
}

func runRead(ctx context.Context, cmd *cli.Command, _ Settings) error {
	fileType, path := cmd.Args().Get(0), cmd.Args().Get(1)
	kubeconfig := cmd.String("kubeconfig")
	w := outWriter(cmd)

	switch fileType {
	case fileTypeRecipe:
		rec, err := recipe.Read(ctx, path, kubeconfig)
		if err != nil {
			return err
		}
		if err := rec.Describe(w); err != nil {
			return fmt.Errorf("failed to describe recipe: %w", err)
		}

		report := rec.InputIntegrity(recipe.WithBaseDir(baseDir(path)))
		for _, warn := range report.Warnings {
			slog.Warn(warn)
		}
		if report.HasErrors() {
			errs := make([]error, 0, len(report.Errors))
			for _, msg := range report.Errors {
				errs = append(errs, errors.New(msg))
			}
			return fmt.Errorf("recipe %s is inconsistent: %w", path, errors.Join(errs...))
		}
		if c := rec.FindCycle(); c != nil {
			return c.Err()
		}
		return nil

	case fileTypeFlavour:
		fl, err := flavour.Read(ctx, path, kubeconfig)
		if err != nil {
			return err
		}
		for _, warn := range fl.Warnings {
			slog.Warn(warn)
		}
		if err := fl.Describe(w); err != nil {
			return fmt.Errorf("failed to describe flavour: %w", err)
		}
		return nil
	}

	return fmt.Errorf("invalid filetype %q", fileType)
}
