// Copyright (c) 2025, The chefkoch Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.Writer = &stdout
	cmd.ErrWriter = &stderr
	cmd.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	err := cmd.Run(context.Background(), append([]string{name}, args...))
	return stdout.String(), stderr.String(), err
}

func TestNoArgsEqualsHelp(t *testing.T) {
	noArgs, _, err := run(t)
	require.NoError(t, err)

	help, _, err := run(t, "-h")
	require.NoError(t, err)

	assert.NotEmpty(t, noArgs)
	assert.Equal(t, help, noArgs)
	for _, c := range []string{"cook", "check", "inspect", "version", "hello", "python", "read", "echo"} {
		assert.Contains(t, noArgs, c)
	}
}

func TestStubCommandsAreSilent(t *testing.T) {
	flagSets := [][]string{
		{},
		{"-v"},
		{"-d"},
		{"-v", "-d"},
		{"--verbose", "--debug"},
	}

	for _, command := range []string{"cook", "check", "inspect"} {
		for _, flags := range flagSets {
			after := append([]string{command}, flags...)
			before := append(append([]string{}, flags...), command)
			for _, args := range [][]string{after, before} {
				stdout, _, err := run(t, args...)
				assert.NoError(t, err, "args %v", args)
				assert.Empty(t, stdout, "args %v", args)
			}
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := run(t, "cokk")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "cokk"`)
	assert.Contains(t, err.Error(), `did you mean "cook"?`)

	_, _, err = run(t, "zzzzzzzz")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestSettings(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		args     []string
		expected Settings
	}{
		{name: "none", expected: Settings{}},
		{name: "verbose flag", args: []string{"-v"}, expected: Settings{Verbose: true}},
		{name: "debug flag", args: []string{"--debug"}, expected: Settings{Debug: true}},
		{name: "verbose env", env: map[string]string{envVerbose: "true"}, expected: Settings{Verbose: true}},
		{name: "env and flag", env: map[string]string{envDebug: "true"}, args: []string{"-v"}, expected: Settings{Verbose: true, Debug: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{envVerbose, envDebug} {
				t.Setenv(key, "")
				if v, ok := tt.env[key]; ok {
					t.Setenv(key, v)
				} else {
					require.NoError(t, os.Unsetenv(key))
				}
			}

			var got Settings
			cmd := &cli.Command{
				Name:  "test",
				Flags: []cli.Flag{newVerboseFlag(), newDebugFlag()},
				Action: func(_ context.Context, c *cli.Command) error {
					got = settingsFrom(c)
					return nil
				},
			}
			require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, tt.args...)))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSettingsVerbosityOrdering(t *testing.T) {
	unset := Settings{}.Verbosity().Level()
	verbose := Settings{Verbose: true}.Verbosity().Level()
	debug := Settings{Debug: true}.Verbosity().Level()
	both := Settings{Verbose: true, Debug: true}.Verbosity().Level()

	assert.LessOrEqual(t, debug, verbose)
	assert.LessOrEqual(t, verbose, unset)
	assert.Equal(t, debug, both)
}

func TestDebugLogsGoToStderr(t *testing.T) {
	stdout, stderr, err := run(t, "-d", "echo", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a b\n", stdout)
	assert.Contains(t, stderr, `"msg":"starting"`)
}
