// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/devnode/anvil/internal/config"
	"github.com/devnode/anvil/internal/fdlimit"
	"github.com/devnode/anvil/internal/node"

	"github.com/charmbracelet/log"
)

type (
	// App wires the CLI to its collaborators. Every command handler
	// receives the same App through the grammar's dispatch function.
	App struct {
		// Runner runs the node until it exits.
		Runner node.Runner
		// Config loads foundry.toml for RPC alias resolution.
		Config ConfigProvider
		// RaiseFDLimit raises the open-file limit. Its result is discarded.
		RaiseFDLimit func() (uint64, error)
		// Logger writes diagnostics to stderr.
		Logger *log.Logger

		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Runner       node.Runner
		Config       ConfigProvider
		RaiseFDLimit func() (uint64, error)
		Logger       *log.Logger
		Stdout       io.Writer
		Stderr       io.Writer
	}

	// ConfigProvider loads foundry configuration.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Logger == nil {
		deps.Logger = newLogger(deps.Stderr, os.Getenv)
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.RaiseFDLimit == nil {
		deps.RaiseFDLimit = fdlimit.Raise
	}
	if deps.Runner == nil {
		deps.Runner = &node.DevNode{
			Version: Version,
			Out:     deps.Stdout,
			Logger:  deps.Logger,
		}
	}

	return &App{
		Runner:       deps.Runner,
		Config:       deps.Config,
		RaiseFDLimit: deps.RaiseFDLimit,
		Logger:       deps.Logger,
		stdout:       deps.Stdout,
		stderr:       deps.Stderr,
	}
}
