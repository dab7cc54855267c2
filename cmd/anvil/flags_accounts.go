// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/devnode/anvil/internal/node"

	"github.com/spf13/pflag"
)

func (f *nodeFlags) accountsFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("accounts", pflag.ContinueOnError)

	flags.Uint64VarP(&f.accounts, flagAccounts, "a", node.DefaultAccounts, "Number of dev accounts to generate and configure")
	flags.Uint64Var(&f.balance, flagBalance, node.DefaultBalance, "Balance of every dev account in `ether`")
	flags.StringVarP(&f.mnemonic, flagMnemonic, "m", "", "BIP39 mnemonic phrase used for generating accounts")
	flags.StringVar(&f.derivationPath, flagDerivationPath, node.DefaultDerivationPath,
		"Derivation path of the child key to be derived")

	return flags
}
