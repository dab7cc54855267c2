// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
)

// Dispatch routes an Invocation. Subcommands write their output to the App's
// stdout and return; no subcommand means the node is started.
func (a *App) Dispatch(ctx context.Context, g *grammar, inv *Invocation) error {
	switch sub := inv.Subcommand.(type) {
	case nil:
		return a.Start(ctx, inv.Node)
	case Completions:
		return writeCompletion(a.stdout, g.root, sub.Shell)
	case GenerateFigSpec:
		return writeFigSpec(a.stdout, g)
	default:
		return fmt.Errorf("unhandled subcommand %T", sub)
	}
}
