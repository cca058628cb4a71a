package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputIntegrity_DuplicateOutputs(t *testing.T) {
	r := mustParse(t, `{"nodes": [
		{"name": "A", "inputs": {}, "outputs": {"a": "doppleganger"}, "stepsource": "source.py"},
		{"name": "B", "inputs": {}, "outputs": {"b": "doppleganger"}, "stepsource": "source.py"}
	]}`)

	report := r.InputIntegrity()
	require.True(t, report.HasErrors())
	assert.Contains(t, report.Errors[0], "the output doppleganger of node B")
	assert.Equal(t, []string{"B"}, report.ErrorNodes)
	assert.Empty(t, report.Warnings)
}

func TestInputIntegrity_Valid(t *testing.T) {
	r := mustParse(t, fourNodes)

	report := r.InputIntegrity()
	assert.False(t, report.HasErrors())
	assert.Empty(t, report.Warnings)
	assert.Len(t, r.Nodes, 4)
}

func TestInputIntegrity_UnreachableChain(t *testing.T) {
	r := mustParse(t, `{"nodes": [
		{"name": "A", "inputs": {"a": "flavour.a", "b": "flavour.b"}, "outputs": {"c": "outOfA"}, "stepsource": "somesource.py"},
		{"name": "B", "inputs": {"d": "flavour.d", "e": "flavour.e"}, "outputs": {"f": "outOfB"}, "stepsource": "source.py"},
		{"name": "C", "inputs": {"g": "outOfA", "h": "unreachable"}, "outputs": {"i": "outOfC"}, "stepsource": "source.py"},
		{"name": "D", "inputs": {"toBeCollected": "outOfC", "by": "flavour.e"}, "outputs": {"k": "collected"}, "stepsource": "collect"}
	]}`)

	report := r.InputIntegrity(WithFileLookup(false))
	assert.False(t, report.HasErrors())
	assert.Len(t, report.Warnings, 2)
	assert.Equal(t, []string{"C", "D"}, report.Removed)
	assert.Equal(t, []string{"A", "B"}, r.NodeNames())
}

func TestInputIntegrity_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte("1,2"), 0o600))

	r := mustParse(t, `{"nodes": [
		{"name": "A", "inputs": {"a": "data.csv", "s": "sub.json"}, "outputs": {"c": "outOfA"}, "stepsource": "somesource.py"}
	]}`)

	report := r.InputIntegrity(WithBaseDir(dir))
	assert.Empty(t, report.Warnings)
	assert.Len(t, r.Nodes, 1)

	r = mustParse(t, `{"nodes": [
		{"name": "A", "inputs": {"a": "data.csv"}, "outputs": {"c": "outOfA"}, "stepsource": "somesource.py"}
	]}`)
	report = r.InputIntegrity(WithBaseDir(dir), WithFileLookup(false))
	assert.Equal(t, []string{"A"}, report.Removed)
	assert.Empty(t, r.Nodes)
}

func TestInputIntegrity_DirectoryIsNotAFile(t *testing.T) {
	dir := t.TempDir()
	r := mustParse(t, `{"nodes": [
		{"name": "A", "inputs": {"a": "`+filepath.ToSlash(dir)+`"}, "outputs": {}, "stepsource": "a.py"}
	]}`)

	report := r.InputIntegrity()
	assert.Equal(t, []string{"A"}, report.Removed)
}
