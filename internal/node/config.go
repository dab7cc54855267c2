// SPDX-License-Identifier: MPL-2.0

package node

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultPort is the JSON-RPC port the node listens on.
	DefaultPort uint16 = 8545
	// DefaultHost is the address the node binds to.
	DefaultHost = "127.0.0.1"
	// DefaultAccounts is the number of dev accounts to generate.
	DefaultAccounts uint64 = 10
	// DefaultBalance is the balance of every dev account, in ether.
	DefaultBalance uint64 = 10000
	// DefaultChainID is the chain id of a fresh dev chain.
	DefaultChainID uint64 = 31337
	// DefaultDerivationPath is the BIP-32 path used for dev accounts.
	DefaultDerivationPath = "m/44'/60'/0'/0/"
	// DefaultForkTimeout bounds every request to the forked endpoint.
	DefaultForkTimeout = 45 * time.Second
	// DefaultForkRetries is the retry budget for requests to the forked endpoint.
	DefaultForkRetries uint32 = 5

	// HardforkLatest tracks the newest supported hardfork.
	HardforkLatest Hardfork = "latest"
	// HardforkPrague enables the Prague/Electra rule set.
	HardforkPrague Hardfork = "prague"
	// HardforkCancun enables the Cancun/Deneb rule set.
	HardforkCancun Hardfork = "cancun"
	// HardforkShanghai enables the Shanghai/Capella rule set.
	HardforkShanghai Hardfork = "shanghai"
	// HardforkParis enables the Paris (merge) rule set.
	HardforkParis Hardfork = "paris"
	// HardforkLondon enables the London rule set.
	HardforkLondon Hardfork = "london"
	// HardforkBerlin enables the Berlin rule set.
	HardforkBerlin Hardfork = "berlin"
	// HardforkIstanbul enables the Istanbul rule set.
	HardforkIstanbul Hardfork = "istanbul"

	// OrderFees orders pending transactions by effective tip.
	OrderFees TransactionOrder = "fees"
	// OrderFIFO orders pending transactions by arrival.
	OrderFIFO TransactionOrder = "fifo"

	forkBlockLatest = "latest"
)

var (
	// ErrInvalidHardfork is returned when a Hardfork value is not recognized.
	ErrInvalidHardfork = errors.New("invalid hardfork")
	// ErrInvalidTransactionOrder is returned when a TransactionOrder value is not recognized.
	ErrInvalidTransactionOrder = errors.New("invalid transaction order")
	// ErrInvalidHost is returned when a listen host is not an IP address.
	ErrInvalidHost = errors.New("invalid host")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid node config")
)

type (
	// Hardfork names the EVM rule set the node executes with.
	Hardfork string

	// InvalidHardforkError is returned when a Hardfork value is not recognized.
	InvalidHardforkError struct {
		Value Hardfork
	}

	// TransactionOrder selects how pending transactions are ordered into blocks.
	TransactionOrder string

	// InvalidTransactionOrderError is returned when a TransactionOrder value is not recognized.
	InvalidTransactionOrderError struct {
		Value TransactionOrder
	}

	// InvalidHostError is returned when a listen host does not parse as an IP address.
	InvalidHostError struct {
		Value string
	}

	// InvalidConfigError collects every field error found in a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// AliasResolver maps a user supplied endpoint alias to its canonical URL.
	AliasResolver interface {
		Resolve(alias string) (string, bool)
	}

	// ServerConfig configures the JSON-RPC listeners.
	ServerConfig struct {
		// Hosts are the addresses to bind; one listener per host.
		Hosts []string
		Port  uint16
		// AllowOrigin is the value of the CORS allowed origin.
		AllowOrigin string
		// NoCORS disables CORS handling entirely.
		NoCORS bool
		// IPCPath is the IPC endpoint path. Empty means IPC is disabled.
		IPCPath string
	}

	// AccountsConfig configures the pre-funded dev accounts.
	AccountsConfig struct {
		Count uint64
		// Balance is the balance of each account in ether.
		Balance        uint64
		Mnemonic       string
		DerivationPath string
	}

	// MiningConfig configures block production.
	MiningConfig struct {
		// BlockTime is the interval mode period. Zero means automine.
		BlockTime time.Duration
		NoMining  bool
		Order     TransactionOrder
	}

	// ForkConfig configures forking from a remote endpoint.
	ForkConfig struct {
		// URL is the remote endpoint or an alias of one.
		URL string
		// BlockNumber is the block pinned by --fork-block-number.
		BlockNumber *uint64
		// URLBlock is the block pinned by the <url>@<block> syntax.
		URLBlock              *uint64
		ChainID               uint64
		Timeout               time.Duration
		Retries               uint32
		ComputeUnitsPerSecond uint64
		NoRateLimit           bool
		NoStorageCaching      bool
	}

	// EVMConfig configures the execution environment.
	EVMConfig struct {
		ChainID              uint64
		Hardfork             Hardfork
		GasLimit             uint64
		GasPrice             uint64
		BaseFee              uint64
		CodeSizeLimit        uint64
		DisableBlockGasLimit bool
		StepsTracing         bool
		AutoImpersonate      bool
	}

	// StateConfig configures genesis and state persistence.
	StateConfig struct {
		// Init is a genesis file to initialize the chain from.
		Init string
		// Path is both loaded at startup and dumped on exit.
		Path     string
		Interval time.Duration
		Dump     string
		Load     string
		// Timestamp overrides the genesis timestamp. Zero uses the current time.
		Timestamp uint64
	}

	// Config is the complete set of node startup options.
	Config struct {
		Server   ServerConfig
		Accounts AccountsConfig
		Mining   MiningConfig
		Fork     ForkConfig
		EVM      EVMConfig
		State    StateConfig
		// Silent suppresses the startup banner and lowers log verbosity.
		Silent bool
	}
)

// DefaultConfig returns the options a bare `anvil` invocation runs with.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Hosts:       []string{DefaultHost},
			Port:        DefaultPort,
			AllowOrigin: "*",
		},
		Accounts: AccountsConfig{
			Count:          DefaultAccounts,
			Balance:        DefaultBalance,
			DerivationPath: DefaultDerivationPath,
		},
		Mining: MiningConfig{
			Order: OrderFees,
		},
		Fork: ForkConfig{
			Timeout: DefaultForkTimeout,
			Retries: DefaultForkRetries,
		},
		EVM: EVMConfig{
			ChainID:  DefaultChainID,
			Hardfork: HardforkLatest,
		},
	}
}

// Hardforks returns every accepted Hardfork value, newest first.
func Hardforks() []Hardfork {
	return []Hardfork{
		HardforkLatest, HardforkPrague, HardforkCancun, HardforkShanghai,
		HardforkParis, HardforkLondon, HardforkBerlin, HardforkIstanbul,
	}
}

// TransactionOrders returns every accepted TransactionOrder value.
func TransactionOrders() []TransactionOrder {
	return []TransactionOrder{OrderFees, OrderFIFO}
}

// String returns the string representation of the Hardfork.
func (h Hardfork) String() string { return string(h) }

// IsValid returns whether the Hardfork is one of the supported rule sets.
func (h Hardfork) IsValid() (bool, []error) {
	for _, known := range Hardforks() {
		if h == known {
			return true, nil
		}
	}
	return false, []error{&InvalidHardforkError{Value: h}}
}

// Error implements the error interface for InvalidHardforkError.
func (e *InvalidHardforkError) Error() string {
	return fmt.Sprintf("invalid hardfork %q (valid: %s)", e.Value, joinValues(Hardforks()))
}

// Unwrap returns ErrInvalidHardfork for errors.Is() compatibility.
func (e *InvalidHardforkError) Unwrap() error { return ErrInvalidHardfork }

// String returns the string representation of the TransactionOrder.
func (o TransactionOrder) String() string { return string(o) }

// IsValid returns whether the TransactionOrder is a supported ordering.
func (o TransactionOrder) IsValid() (bool, []error) {
	switch o {
	case OrderFees, OrderFIFO:
		return true, nil
	default:
		return false, []error{&InvalidTransactionOrderError{Value: o}}
	}
}

// Error implements the error interface for InvalidTransactionOrderError.
func (e *InvalidTransactionOrderError) Error() string {
	return fmt.Sprintf("invalid transaction order %q (valid: %s)", e.Value, joinValues(TransactionOrders()))
}

// Unwrap returns ErrInvalidTransactionOrder for errors.Is() compatibility.
func (e *InvalidTransactionOrderError) Unwrap() error { return ErrInvalidTransactionOrder }

// Error implements the error interface for InvalidHostError.
func (e *InvalidHostError) Error() string {
	return fmt.Sprintf("invalid host %q: must be an IP address", e.Value)
}

// Unwrap returns ErrInvalidHost for errors.Is() compatibility.
func (e *InvalidHostError) Unwrap() error { return ErrInvalidHost }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return "invalid node config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate checks the fields that flag parsing cannot check on its own.
func (c *Config) Validate() error {
	var errs []error
	for _, host := range c.Server.Hosts {
		if net.ParseIP(host) == nil {
			errs = append(errs, &InvalidHostError{Value: host})
		}
	}
	if valid, fieldErrs := c.EVM.Hardfork.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Mining.Order.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// PinnedBlock returns the block the fork starts from. An explicit
// --fork-block-number wins over a block given in the URL. Nil means latest.
func (f *ForkConfig) PinnedBlock() *uint64 {
	if f.BlockNumber != nil {
		return f.BlockNumber
	}
	return f.URLBlock
}

// SetURL stores a --fork-url value, splitting off a trailing @<block>.
func (f *ForkConfig) SetURL(raw string) {
	f.URL, f.URLBlock = ParseForkURL(raw)
}

// ResolveRPCAlias rewrites URL to its canonical endpoint when it names an
// alias known to r. Unknown aliases and URLs are left untouched.
func (f *ForkConfig) ResolveRPCAlias(r AliasResolver) {
	if f.URL == "" || r == nil {
		return
	}
	if resolved, ok := r.Resolve(f.URL); ok {
		f.URL = resolved
	}
}

// ParseForkURL splits `<url>@<block>` into the endpoint and the pinned block.
// The suffix is only treated as a block when it is a decimal number or
// "latest", so credentials in the URL (user:pass@host) survive.
func ParseForkURL(raw string) (string, *uint64) {
	idx := strings.LastIndex(raw, "@")
	if idx < 0 {
		return raw, nil
	}
	endpoint, suffix := raw[:idx], raw[idx+1:]
	if suffix == forkBlockLatest {
		return endpoint, nil
	}
	block, err := strconv.ParseUint(suffix, 10, 64)
	if err != nil {
		return raw, nil
	}
	return endpoint, &block
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
