// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"

	"github.com/devnode/anvil/internal/issue"
)

const (
	// UsageInvalidArgument is a bad or missing value.
	UsageInvalidArgument UsageKind = iota + 1
	// UsageUnknownArgument is an unrecognized flag, command or positional argument.
	UsageUnknownArgument
	// UsageConflict is a combination of options the grammar forbids.
	UsageConflict
	// UsageDisplayHelp means help was requested and rendered.
	UsageDisplayHelp
	// UsageDisplayVersion means the version was requested and rendered.
	UsageDisplayVersion
)

const (
	// ExitUsage is the exit code for malformed invocations.
	ExitUsage = 2
	// ExitFailure is the exit code for node and internal failures.
	ExitFailure = 1
)

type (
	// UsageKind classifies a UsageError.
	UsageKind int

	// UsageError is returned when the arguments do not match the grammar, or
	// when the grammar itself rendered help or version text instead of
	// producing an Invocation.
	UsageError struct {
		Kind UsageKind
		// Message is the rendered help or version text, or a custom description.
		Message string
		Err     error
	}
)

func (k UsageKind) String() string {
	switch k {
	case UsageInvalidArgument:
		return "invalid argument"
	case UsageUnknownArgument:
		return "unknown argument"
	case UsageConflict:
		return "conflicting arguments"
	case UsageDisplayHelp:
		return "help"
	case UsageDisplayVersion:
		return "version"
	default:
		return "usage error"
	}
}

// Error implements the error interface for UsageError.
func (e *UsageError) Error() string {
	switch {
	case e.Message != "":
		return strings.TrimRight(e.Message, "\n")
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

// Unwrap returns the underlying parse error, if any.
func (e *UsageError) Unwrap() error { return e.Err }

// ExitCode is 0 for help and version requests and ExitUsage otherwise.
func (e *UsageError) ExitCode() int {
	if e.Kind == UsageDisplayHelp || e.Kind == UsageDisplayVersion {
		return 0
	}
	return ExitUsage
}

// hint returns the catalog entry that explains this kind of error.
func (e *UsageError) hint() (issue.Id, bool) {
	if errors.Is(e, ErrInvalidShell) {
		return issue.InvalidShellId, true
	}
	switch e.Kind {
	case UsageUnknownArgument:
		return issue.UnknownArgumentId, true
	case UsageInvalidArgument:
		return issue.InvalidValueId, true
	case UsageConflict:
		return issue.ConflictingOptionsId, true
	default:
		return 0, false
	}
}

// classifyFlagError maps pflag parse failures onto usage kinds.
func classifyFlagError(err error) *UsageError {
	msg := err.Error()
	if strings.HasPrefix(msg, "unknown flag") || strings.HasPrefix(msg, "unknown shorthand flag") {
		return &UsageError{Kind: UsageUnknownArgument, Err: err}
	}
	return &UsageError{Kind: UsageInvalidArgument, Err: err}
}
