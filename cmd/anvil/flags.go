// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"time"

	"github.com/devnode/anvil/internal/node"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	flagPort                  = "port"
	flagHost                  = "host"
	flagAllowOrigin           = "allow-origin"
	flagNoCORS                = "no-cors"
	flagIPC                   = "ipc"
	flagAccounts              = "accounts"
	flagBalance               = "balance"
	flagMnemonic              = "mnemonic"
	flagDerivationPath        = "derivation-path"
	flagBlockTime             = "block-time"
	flagNoMining              = "no-mining"
	flagOrder                 = "order"
	flagForkURL               = "fork-url"
	flagForkBlockNumber       = "fork-block-number"
	flagForkChainID           = "fork-chain-id"
	flagTimeout               = "timeout"
	flagRetries               = "retries"
	flagComputeUnitsPerSecond = "compute-units-per-second"
	flagNoRateLimit           = "no-rate-limit"
	flagNoStorageCaching      = "no-storage-caching"
	flagChainID               = "chain-id"
	flagHardfork              = "hardfork"
	flagGasLimit              = "gas-limit"
	flagGasPrice              = "gas-price"
	flagBaseFee               = "base-fee"
	flagCodeSizeLimit         = "code-size-limit"
	flagDisableBlockGasLimit  = "disable-block-gas-limit"
	flagStepsTracing          = "steps-tracing"
	flagAutoImpersonate       = "auto-impersonate"
	flagInit                  = "init"
	flagState                 = "state"
	flagStateInterval         = "state-interval"
	flagDumpState             = "dump-state"
	flagLoadState             = "load-state"
	flagTimestamp             = "timestamp"
	flagSilent                = "silent"

	// EnvHost is the fallback for --host.
	EnvHost = "ANVIL_IP_ADDR"
	// EnvForkURL is the fallback for --fork-url.
	EnvForkURL = "ETH_RPC_URL"
)

type (
	// nodeFlags holds the values bound by the node flag sets.
	nodeFlags struct {
		port        uint16
		hosts       []string
		allowOrigin string
		noCORS      bool
		ipcPath     string

		accounts       uint64
		balance        uint64
		mnemonic       string
		derivationPath string

		blockTime time.Duration
		noMining  bool
		order     node.TransactionOrder

		forkURL               string
		forkBlockNumber       uint64
		forkChainID           uint64
		timeoutMillis         uint64
		retries               uint32
		computeUnitsPerSecond uint64
		noRateLimit           bool
		noStorageCaching      bool

		chainID              uint64
		hardfork             node.Hardfork
		gasLimit             uint64
		gasPrice             uint64
		baseFee              uint64
		codeSizeLimit        uint64
		disableBlockGasLimit bool
		stepsTracing         bool
		autoImpersonate      bool

		stateInit     string
		statePath     string
		stateInterval time.Duration
		dumpState     string
		loadState     string
		timestamp     uint64

		silent bool
	}

	// flagSet is one named concern of the node flags.
	flagSet struct {
		name  string
		flags *pflag.FlagSet
	}
)

// sets returns the node flags grouped by concern.
func (f *nodeFlags) sets() []flagSet {
	return []flagSet{
		{name: "server", flags: f.serverFlags()},
		{name: "accounts", flags: f.accountsFlags()},
		{name: "mining", flags: f.miningFlags()},
		{name: "fork", flags: f.forkFlags()},
		{name: "evm", flags: f.evmFlags()},
		{name: "state", flags: f.stateFlags()},
		{name: "general", flags: f.generalFlags()},
	}
}

func (f *nodeFlags) generalFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("general", pflag.ContinueOnError)
	flags.BoolVar(&f.silent, flagSilent, false, "Don't print anything on startup and don't print logs")
	return flags
}

// config builds the node configuration from the parsed flags. Values bound
// through v pick up their environment fallbacks when the flag is unset.
func (f *nodeFlags) config(flags *pflag.FlagSet, v *viper.Viper) *node.Config {
	cfg := node.DefaultConfig()

	cfg.Server.Port = f.port
	cfg.Server.Hosts = v.GetStringSlice(flagHost)
	cfg.Server.AllowOrigin = f.allowOrigin
	cfg.Server.NoCORS = f.noCORS
	cfg.Server.IPCPath = f.ipcPath

	cfg.Accounts.Count = f.accounts
	cfg.Accounts.Balance = f.balance
	cfg.Accounts.Mnemonic = f.mnemonic
	cfg.Accounts.DerivationPath = f.derivationPath

	cfg.Mining.BlockTime = f.blockTime
	cfg.Mining.NoMining = f.noMining
	cfg.Mining.Order = f.order

	cfg.Fork.SetURL(v.GetString(flagForkURL))
	if flags.Changed(flagForkBlockNumber) {
		block := f.forkBlockNumber
		cfg.Fork.BlockNumber = &block
	}
	cfg.Fork.ChainID = f.forkChainID
	cfg.Fork.Timeout = time.Duration(f.timeoutMillis) * time.Millisecond
	cfg.Fork.Retries = f.retries
	cfg.Fork.ComputeUnitsPerSecond = f.computeUnitsPerSecond
	cfg.Fork.NoRateLimit = f.noRateLimit
	cfg.Fork.NoStorageCaching = f.noStorageCaching

	cfg.EVM.ChainID = f.chainID
	cfg.EVM.Hardfork = f.hardfork
	cfg.EVM.GasLimit = f.gasLimit
	cfg.EVM.GasPrice = f.gasPrice
	cfg.EVM.BaseFee = f.baseFee
	cfg.EVM.CodeSizeLimit = f.codeSizeLimit
	cfg.EVM.DisableBlockGasLimit = f.disableBlockGasLimit
	cfg.EVM.StepsTracing = f.stepsTracing
	cfg.EVM.AutoImpersonate = f.autoImpersonate

	cfg.State.Init = f.stateInit
	cfg.State.Path = f.statePath
	cfg.State.Interval = f.stateInterval
	cfg.State.Dump = f.dumpState
	cfg.State.Load = f.loadState
	cfg.State.Timestamp = f.timestamp

	cfg.Silent = f.silent
	return cfg
}
