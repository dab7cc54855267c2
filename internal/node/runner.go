// SPDX-License-Identifier: MPL-2.0

package node

import "context"

type (
	// Runner runs a node to completion. Run blocks until the node stops,
	// either because ctx was cancelled (a clean exit, nil error) or because
	// the node failed.
	Runner interface {
		Run(ctx context.Context, cfg *Config) error
	}

	// RunnerFunc adapts a plain function to the Runner interface.
	RunnerFunc func(ctx context.Context, cfg *Config) error
)

// Run calls f(ctx, cfg).
func (f RunnerFunc) Run(ctx context.Context, cfg *Config) error {
	return f(ctx, cfg)
}
