// Package main provides tests for the tplgen CLI.
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/tplgen/internal/cli"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("version command error = %v", err)
	}

	if !strings.Contains(buf.String(), "tplgen") {
		t.Errorf("version output should contain 'tplgen', got: %s", buf.String())
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("help command error = %v", err)
	}

	for _, expected := range []string{"generate", "vars", "repl", "completion"} {
		if !strings.Contains(buf.String(), expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, buf.String())
		}
	}
}
