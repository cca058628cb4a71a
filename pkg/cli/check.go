/*
Copyright © 2025 The chefkoch Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/chefkoch/chefkoch/pkg/flavour"
	"github.com/chefkoch/chefkoch/pkg/recipe"
	"github.com/chefkoch/chefkoch/pkg/validator"
)

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:                  "check",
		EnableShellCompletion: true,
		Usage:                 "Check a recipe (and flavour) for consistency",
		Description: `Check that a recipe can be cooked. Without --recipe the command does nothing.

Checks:
  unique-outputs  every published output name is declared once
  inputs          nodes whose inputs cannot be computed are pruned
  acyclic         the data flow between nodes contains no circle
  flavour-params  every flavour.<name> reference is defined by the flavour

# Examples

Check a recipe:
  chefkoch check --recipe recipe.json

Check a recipe against its flavour and fail on errors (useful for CI/CD):
  chefkoch check -r recipe.json -f flavour.json --fail-on-error

Write the result to a ConfigMap:
  chefkoch check -r recipe.yaml -o cm://chefkoch/check-result`,
		Flags: []cli.Flag{
			newRecipeFlag("Path/URI to the recipe to check."),
			newFlavourFlag(),
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with non-zero status if the check fails",
			},
			newOutputFlag(),
			newFormatFlag(),
			newKubeconfigFlag(),
		},
		Before: requireNoArgs,
		Action: withSettings(runCheck),
	}
}

func runCheck(ctx context.Context, cmd *cli.Command, _ Settings) error {
	recipePath := cmd.String("recipe")
	if recipePath == "" {
		slog.Debug("no recipe given, nothing to check")
		return nil
	}

	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}
	kubeconfig := cmd.String("kubeconfig")

	slog.Info("loading recipe", "uri", recipePath)
	rec, err := recipe.Read(ctx, recipePath, kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to load recipe from %q: %w", recipePath, err)
	}

	var fl *flavour.Flavour
	if flavourPath := cmd.String("flavour"); flavourPath != "" {
		slog.Info("loading flavour", "uri", flavourPath)
		if fl, err = flavour.Read(ctx, flavourPath, kubeconfig); err != nil {
			return fmt.Errorf("failed to load flavour from %q: %w", flavourPath, err)
		}
	}

	v := validator.New(
		validator.WithVersion(version),
		validator.WithIntegrityOptions(recipe.WithBaseDir(baseDir(recipePath))),
	)
	result, err := v.Validate(ctx, rec, fl)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if err := writeDocument(ctx, cmd, outFormat, result); err != nil {
		return fmt.Errorf("failed to serialize check result: %w", err)
	}

	slog.Info("check completed",
		"status", result.Summary.Status,
		"errors", result.Summary.Errors,
		"warnings", result.Summary.Warnings,
		"duration", result.Summary.Duration)

	if cmd.Bool("fail-on-error") && result.Failed() {
		return fmt.Errorf("check failed: %d error(s) found", result.Summary.Errors)
	}
	return nil
}
