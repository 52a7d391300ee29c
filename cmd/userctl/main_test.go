package main

import (
	"bytes"
	"strings"
	"testing"
)

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append([]string{"--env-file="}, args...))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
