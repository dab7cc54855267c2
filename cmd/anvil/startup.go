// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/devnode/anvil/internal/config"
	"github.com/devnode/anvil/internal/issue"
	"github.com/devnode/anvil/internal/node"

	"github.com/charmbracelet/log"
)

// Start prepares the environment and runs the node to completion.
//
// The fork URL is rewritten in place when it names a foundry.toml RPC
// endpoint alias, the open-file limit is raised on a best-effort basis, and
// the Runner is awaited. Its error is returned unchanged.
func (a *App) Start(ctx context.Context, cfg *node.Config) error {
	if cfg.Silent {
		a.Logger.SetLevel(log.ErrorLevel)
	}

	if cfg.Fork.URL != "" {
		alias := cfg.Fork.URL
		endpoints := a.endpoints(ctx)
		cfg.Fork.ResolveRPCAlias(endpoints)
		switch {
		case cfg.Fork.URL != alias:
			a.Logger.Debug("resolved rpc endpoint alias", "alias", alias)
		case config.IsAlias(alias):
			a.Logger.Debug("fork url is not a known rpc endpoint alias", "alias", alias, "known", endpoints.Aliases())
		}
	}

	_, _ = a.RaiseFDLimit()

	return a.Runner.Run(ctx, cfg)
}

// endpoints loads the RPC endpoint table. A configuration that cannot be read
// is reported and treated as empty so alias resolution never fails.
func (a *App) endpoints(ctx context.Context) config.Endpoints {
	loaded, err := a.Config.Load(ctx, config.LoadOptions{})
	if err != nil {
		a.Logger.Warn("ignoring foundry config", "err", err)
		if a.Logger.GetLevel() <= log.DebugLevel {
			a.printIssue(a.stderr, issue.FoundryConfigInvalidId)
		}
		return nil
	}
	a.Logger.Debug("loaded foundry config", "profile", loaded.Profile, "files", loaded.Files)
	return loaded.RPCEndpoints
}
