package cmd

import "testing"

func TestSubcommandsRegistered(t *testing.T) {
	found := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		found[c.Name()] = true
	}
	for _, name := range []string{"solve", "validate"} {
		if !found[name] {
			t.Errorf("missing subcommand %s", name)
		}
	}
}
