package main

import (
	"testing"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"up", "down", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("expected subcommand %q, got %v (err %v)", name, cmd, err)
		}
	}
}

func TestDownRejectsBadSteps(t *testing.T) {
	for _, arg := range []string{"zero", "0", "-2"} {
		root := newRootCmd()
		root.SetArgs([]string{"down", arg})
		if err := root.Execute(); err == nil {
			t.Errorf("expected error for step count %q", arg)
		}
	}
}
