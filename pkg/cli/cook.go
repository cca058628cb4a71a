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
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/chefkoch/chefkoch/pkg/defaults"
	"github.com/chefkoch/chefkoch/pkg/flavour"
	"github.com/chefkoch/chefkoch/pkg/fridge"
	"github.com/chefkoch/chefkoch/pkg/recipe"
	"github.com/chefkoch/chefkoch/pkg/scheduler"
	"github.com/chefkoch/chefkoch/pkg/validator"
)

func cookCmd() *cli.Command {
	return &cli.Command{
		Name:                  "cook",
		EnableShellCompletion: true,
		Usage:                 "Plan a recipe and record its jobs",
		Description: `Cook a recipe: check it, plan its nodes by priority and dispatch the jobs
to a pool of workers, once per flavour combination. Step sources are not
executed; every job is recorded as planned and, with --fridge, its file
inputs and results are stored with their hashes. Results depend on the
flavour values of their combination. Without --recipe the command does
nothing.

# Examples

Cook a recipe over every flavour combination and print the report:
  chefkoch cook --recipe recipe.json --flavour flavour.json

Record inputs and results in a fridge:
  chefkoch cook -r recipe.json --fridge ./fridge --link-resources

Use eight workers and write the report as JSON:
  chefkoch cook -r recipe.json --workers 8 -t json -o report.json`,
		Flags: []cli.Flag{
			newRecipeFlag("Path/URI to the recipe to cook."),
			newFlavourFlag(),
			newFridgeFlag("Directory of the fridge storing resources and results"),
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Maximum number of jobs running at the same time",
				Value: defaults.SchedulerWorkers,
			},
			&cli.IntFlag{
				Name:  "max-combinations",
				Usage: "Maximum number of flavour combinations to cook",
				Value: flavour.DefaultMaxCombinations,
			},
			&cli.BoolFlag{
				Name:  "link-resources",
				Usage: "Symlink input files into their fridge shelves",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Maximum duration of the run",
				Value: defaults.CLICookTimeout,
			},
			newOutputFlag(),
			newFormatFlag(),
			newKubeconfigFlag(),
		},
		Before: requireNoArgs,
		Action: withSettings(runCook),
	}
}

func runCook(ctx context.Context, cmd *cli.Command, _ Settings) error {
	recipePath := cmd.String("recipe")
	if recipePath == "" {
		slog.Debug("no recipe given, nothing to cook")
		return nil
	}

	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}
	if workers := cmd.Int("workers"); workers < 1 {
		return fmt.Errorf("invalid number of workers: %d, must be at least 1", workers)
	}
	if limit := cmd.Int("max-combinations"); limit < 1 {
		return fmt.Errorf("invalid combination limit: %d, must be at least 1", limit)
	}

	ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	kubeconfig := cmd.String("kubeconfig")
	base := baseDir(recipePath)

	rec, err := recipe.Read(ctx, recipePath, kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to load recipe from %q: %w", recipePath, err)
	}

	var fl *flavour.Flavour
	var combos []flavour.Combination
	if flavourPath := cmd.String("flavour"); flavourPath != "" {
		if fl, err = flavour.Read(ctx, flavourPath, kubeconfig); err != nil {
			return fmt.Errorf("failed to load flavour from %q: %w", flavourPath, err)
		}
		if combos, err = fl.Combinations(cmd.Int("max-combinations")); err != nil {
			return fmt.Errorf("failed to expand flavour %q: %w", flavourPath, err)
		}
		slog.Info("flavour loaded", "uri", flavourPath, "params", len(fl.Params), "combinations", len(combos))
	}

	result, err := validator.New(
		validator.WithVersion(version),
		validator.WithIntegrityOptions(recipe.WithBaseDir(base)),
	).Validate(ctx, rec, fl)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	if result.Failed() {
		return checkFailure(result)
	}

	report := rec.InputIntegrity(recipe.WithBaseDir(base))
	for _, w := range report.Warnings {
		slog.Warn(w)
	}

	plan, err := rec.Plan(recipe.WithVersion(version))
	if err != nil {
		return fmt.Errorf("failed to plan recipe: %w", err)
	}

	var recorderOpts []scheduler.RecorderOption
	var resources map[string]string
	if fridgePath := cmd.String("fridge"); fridgePath != "" {
		fr, err := fridge.Open(fridgePath,
			fridge.WithLinkResources(cmd.Bool("link-resources")),
			fridge.WithVersion(version))
		if err != nil {
			return fmt.Errorf("failed to open fridge %q: %w", fridgePath, err)
		}
		if resources, err = storeResources(fr, plan, base); err != nil {
			return err
		}
		recorderOpts = append(recorderOpts, scheduler.WithFridge(fr))
	}

	recorder := scheduler.NewRecorder(recorderOpts...)
	for ref, hash := range resources {
		recorder.Seed(ref, hash)
	}

	batch, runErr := scheduler.RunCombinations(ctx, plan, combos, recorder.SeedCombination,
		scheduler.WithWorkers(cmd.Int("workers")),
		scheduler.WithExecutor(recorder),
		scheduler.WithVersion(version),
	)
	if batch != nil {
		if err := writeDocument(ctx, cmd, outFormat, batch); err != nil {
			return fmt.Errorf("failed to serialize cook report: %w", err)
		}
		slog.Info("cooking completed",
			"status", batch.Status,
			"combinations", batch.Summary.Combinations,
			"jobs", batch.Summary.Jobs,
			"failed", batch.Summary.Failed,
			"duration", batch.Duration)
	}
	return runErr
}

func storeResources(fr *fridge.Fridge, plan *recipe.Plan, base string) (map[string]string, error) {
	published := make(map[string]bool)
	for _, jobs := range plan.Priorities {
		for _, job := range jobs {
			for _, out := range job.Outputs {
				published[out] = true
			}
		}
	}

	hashes := make(map[string]string)
	for _, jobs := range plan.Priorities {
		for _, job := range jobs {
			shelf, err := fr.Shelf(job.Node)
			if err != nil {
				return nil, fmt.Errorf("failed to open shelf for %s: %w", job.Node, err)
			}
			for _, refs := range job.Inputs {
				for _, ref := range refs {
					if !isFileReference(ref, published) {
						continue
					}
					path := ref
					if base != "" && !filepath.IsAbs(ref) {
						path = filepath.Join(base, ref)
					}
					item, err := shelf.AddResource(path)
					if err != nil {
						return nil, fmt.Errorf("failed to store resource %s of %s: %w", ref, job.Node, err)
					}
					slog.Debug("resource stored", "node", job.Node, "path", item.Path, "hash", item.Hash)
					hashes[ref] = item.Hash
				}
			}
		}
	}
	return hashes, nil
}

func isFileReference(ref string, published map[string]bool) bool {
	switch {
	case published[ref]:
		return false
	case strings.HasPrefix(ref, recipe.FlavourPrefix):
		return false
	case strings.EqualFold(filepath.Ext(ref), ".json"):
		return false
	default:
		return true
	}
}

// checkFailure joins the error findings of a failed check.
func checkFailure(result *validator.CheckResult) error {
	var errs []error
	for _, f := range result.Findings {
		if f.Severity == validator.SeverityError {
			errs = append(errs, errors.New(f.Message))
		}
	}
	return fmt.Errorf("recipe cannot be cooked: %w", errors.Join(errs...))
}
