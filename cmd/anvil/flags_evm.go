// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/devnode/anvil/internal/node"

	"github.com/spf13/pflag"
)

func (f *nodeFlags) evmFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("evm", pflag.ContinueOnError)

	flags.Uint64Var(&f.chainID, flagChainID, node.DefaultChainID, "The chain ID")
	flags.Var(newEnumValue(&f.hardfork, node.HardforkLatest, node.Hardforks(), "hardfork"), flagHardfork,
		"The EVM hardfork to use")
	flags.Uint64Var(&f.gasLimit, flagGasLimit, 0, "The block gas limit")
	flags.Uint64Var(&f.gasPrice, flagGasPrice, 0, "The gas price")
	flags.Uint64Var(&f.baseFee, flagBaseFee, 0, "The base fee in a block")
	flags.Uint64Var(&f.codeSizeLimit, flagCodeSizeLimit, 0, "EIP-170: contract code size limit in `bytes`")
	flags.BoolVar(&f.disableBlockGasLimit, flagDisableBlockGasLimit, false, "Disable the call.gas_limit <= block.gas_limit constraint")
	flags.BoolVar(&f.stepsTracing, flagStepsTracing, false, "Enable steps tracing used for debug calls returning geth-style traces")
	flags.BoolVar(&f.autoImpersonate, flagAutoImpersonate, false, "Enable autoImpersonate on startup")

	return flags
}
