// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/devnode/anvil/internal/node"

	"github.com/spf13/pflag"
)

// forkDependents require --fork-url. They have no effect without a fork.
var forkDependents = []string{
	flagForkBlockNumber,
	flagForkChainID,
	flagRetries,
	flagTimeout,
	flagComputeUnitsPerSecond,
	flagNoRateLimit,
	flagNoStorageCaching,
}

func (f *nodeFlags) forkFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("fork", pflag.ContinueOnError)

	flags.StringVarP(&f.forkURL, flagForkURL, "f", "",
		"Fetch state over a remote endpoint instead of starting from an empty state. "+
			"Accepts an alias from foundry.toml [rpc_endpoints] and an optional @<block> suffix (env "+EnvForkURL+")")
	flags.Uint64Var(&f.forkBlockNumber, flagForkBlockNumber, 0, "Fetch state from a specific `block` number")
	flags.Uint64Var(&f.forkChainID, flagForkChainID, 0, "Chain ID reported for the fork, overriding the remote one")
	flags.Uint64Var(&f.timeoutMillis, flagTimeout, uint64(node.DefaultForkTimeout.Milliseconds()),
		"Timeout in `ms` for requests sent to the remote endpoint")
	flags.Uint32Var(&f.retries, flagRetries, node.DefaultForkRetries,
		"Number of retry requests for spurious networks (timed out requests)")
	flags.Uint64Var(&f.computeUnitsPerSecond, flagComputeUnitsPerSecond, 0,
		"Number of assumed available compute units per second for this provider")
	flags.BoolVar(&f.noRateLimit, flagNoRateLimit, false, "Disable rate limiting for the fork provider")
	flags.BoolVar(&f.noStorageCaching, flagNoStorageCaching, false, "Explicitly disable the use of RPC caching")

	return flags
}
