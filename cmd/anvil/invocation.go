// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devnode/anvil/internal/node"
)

const (
	ShellBash       Shell = "bash"
	ShellElvish     Shell = "elvish"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
	ShellZsh        Shell = "zsh"
)

// ErrInvalidShell is returned when a shell name is not supported.
var ErrInvalidShell = errors.New("invalid shell")

type (
	// Invocation is one parsed process run. A nil Subcommand runs the node.
	Invocation struct {
		Node       *node.Config
		Subcommand Subcommand
	}

	// Subcommand is a one-shot auxiliary action. The set of implementations
	// is closed: Completions and GenerateFigSpec.
	Subcommand interface {
		subcommand()
	}

	// Completions emits a completion script for Shell.
	Completions struct {
		Shell Shell
	}

	// GenerateFigSpec emits a Fig autocompletion spec.
	GenerateFigSpec struct{}

	// Shell is a completion script dialect.
	Shell string

	// InvalidShellError is returned for an unsupported shell name.
	InvalidShellError struct {
		Value Shell
	}
)

func (Completions) subcommand()     {}
func (GenerateFigSpec) subcommand() {}

// Shells returns the supported shells in the order they are advertised.
func Shells() []Shell {
	return []Shell{ShellBash, ShellElvish, ShellFish, ShellPowerShell, ShellZsh}
}

func (s Shell) String() string { return string(s) }

// IsValid returns whether the Shell is supported, and a list of
// validation errors if it is not.
func (s Shell) IsValid() (bool, []error) {
	for _, known := range Shells() {
		if s == known {
			return true, nil
		}
	}
	return false, []error{&InvalidShellError{Value: s}}
}

// Error implements the error interface for InvalidShellError.
func (e *InvalidShellError) Error() string {
	names := make([]string, 0, len(Shells()))
	for _, s := range Shells() {
		names = append(names, string(s))
	}
	return fmt.Sprintf("invalid shell %q (valid: %s)", e.Value, strings.Join(names, ", "))
}

// Unwrap returns ErrInvalidShell for errors.Is() compatibility.
func (e *InvalidShellError) Unwrap() error { return ErrInvalidShell }

// Parse converts raw arguments (without the program name) into an
// Invocation. It performs no I/O: help and version output is captured and
// returned inside a *UsageError of kind UsageDisplayHelp or
// UsageDisplayVersion. Malformed input yields a *UsageError as well.
func Parse(args []string) (*Invocation, error) {
	var parsed *Invocation
	g := newGrammar(func(_ context.Context, _ *grammar, inv *Invocation) error {
		parsed = inv
		return nil
	})

	var out bytes.Buffer
	g.root.SetArgs(args)
	g.root.SetOut(&out)
	g.root.SetErr(&out)
	g.root.SilenceErrors = true
	g.root.SilenceUsage = true

	if _, err := g.root.ExecuteC(); err != nil {
		return nil, g.classify(err)
	}
	if parsed != nil {
		return parsed, nil
	}

	kind := UsageDisplayHelp
	if f := g.root.Flags().Lookup("version"); f != nil && f.Changed {
		kind = UsageDisplayVersion
	}
	return nil, &UsageError{Kind: kind, Message: out.String()}
}
