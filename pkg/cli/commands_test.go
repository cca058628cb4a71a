package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chefkoch/chefkoch/pkg/fridge"
	"github.com/chefkoch/chefkoch/pkg/scheduler"
	"github.com/chefkoch/chefkoch/pkg/validator"
)

const (
	flavourRecipe = `{"nodes": [
  {"name": "A", "inputs": {"a": "flavour.a"}, "outputs": {"o": "outOfA"}, "stepsource": "a.py"},
  {"name": "B", "inputs": {"x": "outOfA"}, "outputs": {"o": "outOfB"}, "stepsource": "b.py"}
]}`
	cycleRecipe = `{"nodes": [
  {"name": "A", "inputs": {"a": "flavour.a"}, "outputs": {"b": "outOfA"}, "stepsource": "a.py"},
  {"name": "B", "inputs": {"x": "outOfA", "y": "outOfC"}, "outputs": {"o": "outOfB"}, "stepsource": "b.py"},
  {"name": "C", "inputs": {"x": "outOfB"}, "outputs": {"o": "outOfC"}, "stepsource": "c.py"}
]}`
	duplicateRecipe = `{"nodes": [
  {"name": "A", "inputs": {}, "outputs": {"o": "same"}, "stepsource": "a.py"},
  {"name": "B", "inputs": {}, "outputs": {"o": "same"}, "stepsource": "b.py"}
]}`
	fileRecipe = `{"nodes": [
  {"name": "A", "inputs": {"d": "data.txt"}, "outputs": {"o": "outOfA"}, "stepsource": "a.py"},
  {"name": "B", "inputs": {"x": "outOfA"}, "outputs": {"o": "outOfB"}, "stepsource": "b.py"}
]}`
	sampleFlavour = `{"a": [1, 2], "unused": "x"}`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRead_InvalidFiletype(t *testing.T) {
	stdout, _, err := run(t, "read", "recipy", "does-not-exist.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid filetype "recipy"`)
	assert.Contains(t, err.Error(), `did you mean "recipe"?`)
	assert.Empty(t, stdout)
}

func TestRead_ArgumentCount(t *testing.T) {
	for _, args := range [][]string{{"read"}, {"read", "recipe"}, {"read", "recipe", "a", "b"}} {
		_, _, err := run(t, args...)
		assert.Error(t, err, "args %v", args)
	}
}

func TestRead_Recipe(t *testing.T) {
	path := writeFile(t, t.TempDir(), "recipe.json", flavourRecipe)

	stdout, _, err := run(t, "read", "recipe", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Recipe with 2 node(s)")
	assert.Contains(t, stdout, "A")
	assert.Contains(t, stdout, "B")
}

func TestRead_RecipeCycle(t *testing.T) {
	path := writeFile(t, t.TempDir(), "recipe.json", cycleRecipe)

	_, _, err := run(t, "read", "recipe", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "B -> C -> B")
}

func TestRead_RecipeDuplicateOutput(t *testing.T) {
	path := writeFile(t, t.TempDir(), "recipe.json", duplicateRecipe)

	_, _, err := run(t, "read", "recipe", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is inconsistent")
	assert.Contains(t, err.Error(), "the output same of node B")
}

func TestRead_Flavour(t *testing.T) {
	path := writeFile(t, t.TempDir(), "flavour.json", sampleFlavour)

	stdout, _, err := run(t, "read", "flavour", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Flavour with 2 parameter(s), 2 combination(s)")
}

func TestRead_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	for _, ft := range fileTypes {
		_, _, err := run(t, "read", ft, missing)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "the file path or file name is incorrect")
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	recipePath := writeFile(t, dir, "recipe.json", flavourRecipe)
	flavourPath := writeFile(t, dir, "flavour.json", sampleFlavour)

	stdout, _, err := run(t, "check", "-r", recipePath, "-f", flavourPath, "-t", "json")
	require.NoError(t, err)

	var result validator.CheckResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, validator.StatusWarn, result.Summary.Status)
	assert.Equal(t, 2, result.Summary.Nodes)
	assert.Equal(t, 2, result.Summary.Combinations)
	assert.Equal(t, []string{"A", "B"}, result.Computable)
}

func TestCheck_FailOnError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "recipe.json", duplicateRecipe)

	stdout, _, err := run(t, "check", "-r", path, "-t", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"status": "fail"`)

	_, _, err = run(t, "check", "-r", path, "--fail-on-error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check failed")
}

func TestCheck_UnknownFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "recipe.json", flavourRecipe)

	_, _, err := run(t, "check", "-r", path, "-t", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestCookAndInspect(t *testing.T) {
	dir := t.TempDir()
	recipePath := writeFile(t, dir, "recipe.json", fileRecipe)
	dataPath := writeFile(t, dir, "data.txt", "1 2 3")
	fridgePath := filepath.Join(dir, "fridge")

	stdout, _, err := run(t, "cook", "-r", recipePath, "--fridge", fridgePath, "--workers", "2", "-t", "json")
	require.NoError(t, err)

	var batch scheduler.BatchReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &batch))
	assert.Equal(t, scheduler.StatusDone, batch.Status)
	assert.Equal(t, 1, batch.Summary.Combinations)
	assert.Equal(t, 2, batch.Summary.Jobs)
	require.Len(t, batch.Runs, 1)
	report := batch.Runs[0].Report
	require.NotNil(t, report)
	assert.Equal(t, 2, report.Summary.Succeeded)
	assert.NotEmpty(t, report.RunID)

	stdout, _, err = run(t, "inspect", "--fridge", fridgePath, "-t", "json", "--fail-on-stale")
	require.NoError(t, err)

	var inv fridge.Inventory
	require.NoError(t, json.Unmarshal([]byte(stdout), &inv))
	assert.Equal(t, 2, inv.Summary.Shelves)
	assert.Equal(t, 3, inv.Summary.Items)
	assert.Equal(t, 3, inv.Summary.OK)

	require.NoError(t, os.WriteFile(dataPath, []byte("changed"), 0o600))
	_, _, err = run(t, "inspect", "--fridge", fridgePath, "--fail-on-stale")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stale")
}

func TestCook_FlavourCombinations(t *testing.T) {
	dir := t.TempDir()
	recipePath := writeFile(t, dir, "recipe.json", flavourRecipe)
	flavourPath := writeFile(t, dir, "flavour.json", sampleFlavour)
	fridgePath := filepath.Join(dir, "fridge")

	stdout, _, err := run(t, "cook", "-r", recipePath, "-f", flavourPath, "--fridge", fridgePath, "-t", "json")
	require.NoError(t, err)

	var batch scheduler.BatchReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &batch))
	assert.Equal(t, scheduler.StatusDone, batch.Status)
	assert.Equal(t, 2, batch.Summary.Combinations)
	assert.Equal(t, 2, batch.Summary.Succeeded)
	assert.Equal(t, 4, batch.Summary.Jobs)
	require.Len(t, batch.Runs, 2)
	assert.EqualValues(t, 1, batch.Runs[0].Values["a"])
	assert.EqualValues(t, 2, batch.Runs[1].Values["a"])

	// one record per parameter value, and per combination for each result
	stdout, _, err = run(t, "inspect", "--fridge", fridgePath, "-t", "json", "--fail-on-stale")
	require.NoError(t, err)
	var inv fridge.Inventory
	require.NoError(t, json.Unmarshal([]byte(stdout), &inv))
	assert.Equal(t, 3, inv.Summary.Shelves)
	assert.Equal(t, 7, inv.Summary.Items)
	assert.Equal(t, 7, inv.Summary.OK)

	_, _, err = run(t, "cook", "-r", recipePath, "-f", flavourPath, "--max-combinations", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit is 1")
}

func TestCook_Errors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "recipe.json", flavourRecipe)
	dup := writeFile(t, dir, "dup.json", duplicateRecipe)

	_, _, err := run(t, "cook", "-r", good, "--workers", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid number of workers")

	_, _, err = run(t, "cook", "-r", dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipe cannot be cooked")
}

func TestInspect_MissingFridge(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, _, err := run(t, "inspect", "--fridge", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFlagOnlyCommandsRejectArguments(t *testing.T) {
	tests := [][]string{
		{"cook", "extra"},
		{"check", "extra"},
		{"inspect", "extra"},
		{"version", "extra"},
		{"hello", "extra"},
		{"python", "extra"},
		{"runtime", "a", "b"},
		{"-v", "cook", "extra"},
		{"check", "-d", "extra"},
	}
	for _, args := range tests {
		stdout, _, err := run(t, args...)
		require.Error(t, err, "args %v", args)
		assert.Contains(t, err.Error(), "accepts no arguments", "args %v", args)
		assert.Empty(t, stdout, "args %v", args)
	}
}

func TestOutputToMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	recipePath := writeFile(t, dir, "recipe.json", flavourRecipe)
	out := filepath.Join(dir, "missing", "result.json")

	stdout, _, err := run(t, "check", "-r", recipePath, "-t", "json", "-o", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
	assert.Empty(t, stdout)
}
