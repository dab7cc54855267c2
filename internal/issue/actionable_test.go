// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "parse arguments"},
			want: "failed to parse arguments",
		},
		{
			name: "with resource",
			err:  &ActionableError{Operation: "load foundry config", Resource: "foundry.toml"},
			want: "failed to load foundry config: foundry.toml",
		},
		{
			name: "with cause",
			err:  &ActionableError{Operation: "bind", Resource: "127.0.0.1:8545", Cause: errors.New("address in use")},
			want: "failed to bind: 127.0.0.1:8545: address in use",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("load foundry config").
		Wrap(os.ErrNotExist).
		BuildError()
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("errors.Is(err, os.ErrNotExist) = false")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection refused")
	ae := &ActionableError{
		Operation:   "fork",
		Resource:    "https://rpc.example",
		Suggestions: []string{"Check the URL", "Check your network"},
		Cause:       &wrapErr{msg: "dial", inner: inner},
	}

	plain := ae.Format(false)
	for _, want := range []string{"failed to fork", "  • Check the URL", "  • Check your network"} {
		if !strings.Contains(plain, want) {
			t.Errorf("Format(false) = %q, want it to contain %q", plain, want)
		}
	}
	if strings.Contains(plain, "Error chain") {
		t.Errorf("Format(false) should not include the error chain")
	}

	verbose := ae.Format(true)
	for _, want := range []string{"Error chain:", "1. dial: connection refused", "2. connection refused"} {
		if !strings.Contains(verbose, want) {
			t.Errorf("Format(true) = %q, want it to contain %q", verbose, want)
		}
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if ae := NewErrorContext().WithResource("x").Build(); ae != nil {
		t.Errorf("Build() without operation = %v, want nil", ae)
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}

	ae := NewErrorContext().
		WithOperation("resolve alias").
		WithResource("mainnet").
		WithSuggestion("a").
		WithSuggestion("b").
		Build()
	if ae == nil {
		t.Fatal("Build() = nil")
	}
	if ae.Operation != "resolve alias" || ae.Resource != "mainnet" || len(ae.Suggestions) != 2 {
		t.Errorf("Build() = %+v", ae)
	}
}

type wrapErr struct {
	msg   string
	inner error
}

func (e *wrapErr) Error() string { return e.msg + ": " + e.inner.Error() }
func (e *wrapErr) Unwrap() error { return e.inner }
