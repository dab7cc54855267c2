// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// versionString returns a formatted version string for display.
func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs anvil with the process arguments and exits. It is called by
// main.main().
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], Dependencies{}))
}

// Run executes anvil with args and returns the process exit code. The run
// context is cancelled on SIGINT and SIGTERM.
func Run(ctx context.Context, args []string, deps Dependencies) int {
	app := NewApp(deps)
	g := newGrammar(app.Dispatch)

	g.root.SetArgs(args)
	g.root.SetOut(app.stdout)
	g.root.SetErr(app.stderr)

	err := fang.Execute(
		ctx,
		g.root,
		fang.WithVersion(versionString()),
		fang.WithoutCompletions(),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			app.renderError(w, styles, g.classify(err))
		}),
	)
	return exitCode(g.classify(err))
}
