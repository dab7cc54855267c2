// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
)

// ExitError lets a Runner request a specific process exit code. A zero Code
// with a non-nil Err still exits with ExitFailure.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCode maps a terminal error onto the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return usageErr.ExitCode()
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code == 0 && exitErr.Err != nil {
			return ExitFailure
		}
		return exitErr.Code
	}
	return ExitFailure
}
