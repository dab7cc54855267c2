// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriteCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell    Shell
		contains []string
	}{
		{ShellBash, []string{"__start_anvil", "complete"}},
		{ShellZsh, []string{"#compdef anvil", "__complete"}},
		{ShellFish, []string{"complete -c anvil"}},
		{ShellPowerShell, []string{"Register-ArgumentCompleter", "anvil"}},
		{ShellElvish, []string{"edit:completion:arg-completer[anvil]", "anvil __complete $@args"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell.String(), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := writeCompletion(&buf, newGrammar(nil).root, tt.shell); err != nil {
				t.Fatalf("writeCompletion(%s) error = %v", tt.shell, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s completion does not contain %q", tt.shell, want)
				}
			}
		})
	}
}

func TestWriteCompletion_InvalidShell(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := writeCompletion(&buf, newGrammar(nil).root, Shell("tcsh"))
	if !errors.Is(err, ErrInvalidShell) {
		t.Errorf("writeCompletion(tcsh) = %v, want ErrInvalidShell", err)
	}
	if buf.Len() != 0 {
		t.Errorf("writeCompletion(tcsh) wrote %d bytes, want none", buf.Len())
	}
}
