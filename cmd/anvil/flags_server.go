// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/devnode/anvil/internal/node"

	"github.com/spf13/pflag"
)

// defaultIPCPath is used when --ipc is passed without a value.
const defaultIPCPath = "/tmp/anvil.ipc"

func (f *nodeFlags) serverFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("server", pflag.ContinueOnError)

	flags.Uint16VarP(&f.port, flagPort, "p", node.DefaultPort, "Port number to listen on")
	flags.StringSliceVar(&f.hosts, flagHost, []string{node.DefaultHost},
		"IP addresses to listen on, repeatable (env "+EnvHost+")")
	flags.StringVar(&f.allowOrigin, flagAllowOrigin, "*", "Value of the Access-Control-Allow-Origin response header")
	flags.BoolVar(&f.noCORS, flagNoCORS, false, "Disable CORS")
	flags.StringVar(&f.ipcPath, flagIPC, "", "Launch an IPC server at the given `path`")
	flags.Lookup(flagIPC).NoOptDefVal = defaultIPCPath

	return flags
}
