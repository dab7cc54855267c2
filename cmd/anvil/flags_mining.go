// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/devnode/anvil/internal/node"

	"github.com/spf13/pflag"
)

func (f *nodeFlags) miningFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("mining", pflag.ContinueOnError)

	flags.VarP(newSecondsValue(&f.blockTime), flagBlockTime, "b",
		"Block time in seconds for interval mining, fractions allowed")
	flags.BoolVar(&f.noMining, flagNoMining, false, "Disable auto and interval mining, and mine on demand instead")
	flags.Var(newEnumValue(&f.order, node.OrderFees, node.TransactionOrders(), "order"), flagOrder,
		"How transactions are sorted in the mempool")

	return flags
}
