// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/pflag"
)

// stateFileFlags complete to file paths.
var stateFileFlags = []string{flagInit, flagState, flagDumpState, flagLoadState}

func (f *nodeFlags) stateFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("state", pflag.ContinueOnError)

	flags.StringVar(&f.stateInit, flagInit, "", "Initialize the genesis block with the given genesis.json `file`")
	flags.StringVar(&f.statePath, flagState, "",
		"Load state from `path` on startup and dump it there on exit. Replaces --init, --load-state and --dump-state")
	flags.Var(newSecondsValue(&f.stateInterval), flagStateInterval, "Interval in seconds at which the state is dumped to disk")
	flags.StringVar(&f.dumpState, flagDumpState, "", "Dump the state and block environment of the chain on exit to the given `file`")
	flags.StringVar(&f.loadState, flagLoadState, "", "Initialize the chain from a previously saved state snapshot `file`")
	flags.Uint64Var(&f.timestamp, flagTimestamp, 0, "The timestamp of the genesis block")

	return flags
}
