// Package cli implements the command-line interface of chefkoch, the
// compute cluster cuisine.
//
// # Overview
//
// chefkoch plans computations described as a recipe: a graph of nodes, each
// running a step on named inputs and publishing named outputs. A flavour
// holds the parameters a recipe references as flavour.<name>, and a fridge
// stores the resources and results of a run together with their hashes.
//
// # Commands
//
// cook - Plan a recipe and record its jobs:
//
//	chefkoch cook --recipe recipe.json [--flavour flavour.json] [--fridge DIR]
//
// check - Check a recipe (and flavour) for consistency:
//
//	chefkoch check --recipe recipe.json [--flavour flavour.json] [--fail-on-error]
//
// inspect - List and verify the items of a fridge:
//
//	chefkoch inspect --fridge DIR [--fail-on-stale]
//
// read - Describe a recipe or flavour file:
//
//	chefkoch read recipe recipe.json
//	chefkoch read flavour flavour.json
//
// version, hello, python and echo are small utilities.
//
// Without --recipe or --fridge, cook, check and inspect do nothing.
//
// # Global Flags
//
//	--verbose, -v  Log informational messages (env CHEFKOCH_VERBOSE)
//	--debug, -d    Log debug messages (env CHEFKOCH_DEBUG)
//	--help, -h     Show command help
//
// Global flags may be given before or after the command. Logs are written
// as JSON to stderr, documents to stdout or --output.
//
// # Output Formats
//
// Documents are written as YAML (default), JSON or table (--format, -t).
// --output accepts a file path or a ConfigMap URI (cm://namespace/name).
package cli
