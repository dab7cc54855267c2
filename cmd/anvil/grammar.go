// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/devnode/anvil/internal/node"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type (
	// dispatchFunc receives every Invocation the grammar produces.
	dispatchFunc func(ctx context.Context, g *grammar, inv *Invocation) error

	// requirement states that flag is only valid together with needs.
	requirement struct {
		flag  string
		needs string
	}

	// grammar is the canonical invocation grammar. Parsing, completion
	// scripts and the Fig spec are all derived from it.
	grammar struct {
		root      *cobra.Command
		flags     *nodeFlags
		sets      []flagSet
		aliases   map[string]string
		conflicts [][]string
		requires  []requirement
		env       *viper.Viper

		sink       dispatchFunc
		dispatched bool
	}
)

// flagAliases maps accepted alternative spellings onto canonical flag names.
var flagAliases = map[string]string{
	"rpc-url":                flagForkURL,
	"blocktime":              flagBlockTime,
	"no-mine":                flagNoMining,
	"block-base-fee-per-gas": flagBaseFee,
	"tracing":                flagStepsTracing,
}

// flagConflicts lists groups of mutually exclusive flags.
var flagConflicts = [][]string{
	{flagNoMining, flagBlockTime},
	{flagState, flagInit},
	{flagState, flagLoadState},
	{flagState, flagDumpState},
	{flagNoCORS, flagAllowOrigin},
}

// envFallbacks are consulted when the flag is not passed.
var envFallbacks = map[string]string{
	flagHost:    EnvHost,
	flagForkURL: EnvForkURL,
}

func newGrammar(sink dispatchFunc) *grammar {
	flags := &nodeFlags{}
	requires := make([]requirement, 0, len(forkDependents))
	for _, name := range forkDependents {
		requires = append(requires, requirement{flag: name, needs: flagForkURL})
	}

	g := &grammar{
		flags:     flags,
		sets:      flags.sets(),
		aliases:   flagAliases,
		conflicts: flagConflicts,
		requires:  requires,
		env:       viper.New(),
		sink:      sink,
	}
	g.root = g.build()
	return g
}

func (g *grammar) build() *cobra.Command {
	root := &cobra.Command{
		Use:   "anvil",
		Short: "A fast local Ethereum development node",
		Long: TitleStyle.Render("anvil") + SubtitleStyle.Render(" - A fast local Ethereum development node") + `

Starts a development node with funded accounts. Fork a live network with
--fork-url, which also accepts an alias from the [rpc_endpoints] table of
foundry.toml.

` + SubtitleStyle.Render("Examples:") + `
  ` + CmdStyle.Render("anvil") + `                                 Listen on 127.0.0.1:8545
  ` + CmdStyle.Render("anvil --fork-url mainnet@19000000") + `     Fork an rpc_endpoints alias at a block
  ` + CmdStyle.Render("anvil --block-time 0.5") + `                Mine a block every 500ms
  ` + CmdStyle.Render("anvil completions zsh > _anvil") + `        Write zsh completions`,
		Version:           versionString(),
		Args:              usageArgs(UsageUnknownArgument, cobra.NoArgs),
		PreRunE:           g.checkFlagRelations,
		RunE:              g.runNode,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	for _, set := range g.sets {
		root.Flags().AddFlagSet(set.flags)
	}
	root.SetGlobalNormalizationFunc(g.normalize)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return classifyFlagError(err)
	})

	for _, group := range g.conflicts {
		root.MarkFlagsMutuallyExclusive(group...)
	}
	for _, name := range stateFileFlags {
		_ = root.MarkFlagFilename(name)
	}
	registerValueCompletions(root)

	for name, env := range envFallbacks {
		_ = g.env.BindPFlag(name, root.Flags().Lookup(name))
		_ = g.env.BindEnv(name, env)
	}

	root.AddCommand(g.completionsCommand(), g.figSpecCommand())
	return root
}

func (g *grammar) completionsCommand() *cobra.Command {
	valid := make([]string, 0, len(Shells()))
	for _, s := range Shells() {
		valid = append(valid, s.String())
	}

	return &cobra.Command{
		Use:     "completions <shell>",
		Aliases: []string{"com"},
		Short:   "Generate shell completions script",
		Long: `Generate a shell completion script for anvil on standard output.

` + SubtitleStyle.Render("Bash:") + `
  eval "$(anvil completions bash)"

` + SubtitleStyle.Render("Zsh:") + `
  anvil completions zsh > "${fpath[1]}/_anvil"

` + SubtitleStyle.Render("Fish:") + `
  anvil completions fish > ~/.config/fish/completions/anvil.fish

` + SubtitleStyle.Render("PowerShell:") + `
  anvil completions powershell | Out-String | Invoke-Expression

` + SubtitleStyle.Render("Elvish:") + `
  anvil completions elvish > ~/.config/elvish/lib/anvil.elv`,
		DisableFlagsInUseLine: true,
		ValidArgs:             valid,
		Args:                  shellArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.dispatch(cmd.Context(), &Invocation{
				Node:       node.DefaultConfig(),
				Subcommand: Completions{Shell: Shell(args[0])},
			})
		},
	}
}

func (g *grammar) figSpecCommand() *cobra.Command {
	return &cobra.Command{
		Use:                   "generate-fig-spec",
		Aliases:               []string{"fig"},
		Short:                 "Generate Fig autocompletion spec",
		DisableFlagsInUseLine: true,
		Args:                  usageArgs(UsageUnknownArgument, cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.dispatch(cmd.Context(), &Invocation{
				Node:       node.DefaultConfig(),
				Subcommand: GenerateFigSpec{},
			})
		},
	}
}

func (g *grammar) runNode(cmd *cobra.Command, _ []string) error {
	cfg := g.flags.config(cmd.Flags(), g.env)
	if err := cfg.Validate(); err != nil {
		return &UsageError{Kind: UsageInvalidArgument, Err: err}
	}
	return g.dispatch(cmd.Context(), &Invocation{Node: cfg})
}

// checkFlagRelations enforces conflicts and requirements before the node
// configuration is built. cobra would report conflicts later as plain errors.
func (g *grammar) checkFlagRelations(cmd *cobra.Command, _ []string) error {
	if err := cmd.ValidateFlagGroups(); err != nil {
		return &UsageError{Kind: UsageConflict, Err: err}
	}
	for _, req := range g.requires {
		if cmd.Flags().Changed(req.flag) && !g.provided(cmd, req.needs) {
			return &UsageError{
				Kind: UsageConflict,
				Err:  fmt.Errorf("--%s requires --%s", req.flag, req.needs),
			}
		}
	}
	return nil
}

// provided reports whether name was passed or supplied through its
// environment fallback.
func (g *grammar) provided(cmd *cobra.Command, name string) bool {
	if cmd.Flags().Changed(name) {
		return true
	}
	if _, ok := envFallbacks[name]; ok {
		return g.env.GetString(name) != ""
	}
	return false
}

func (g *grammar) dispatch(ctx context.Context, inv *Invocation) error {
	g.dispatched = true
	return g.sink(ctx, g, inv)
}

// classify turns errors cobra raised before dispatch into usage errors.
// Errors returned by a dispatched action pass through unchanged.
func (g *grammar) classify(err error) error {
	if err == nil || g.dispatched {
		return err
	}
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return err
	}
	return &UsageError{Kind: UsageInvalidArgument, Err: err}
}

func (g *grammar) normalize(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if target, ok := g.aliases[name]; ok {
		return pflag.NormalizedName(target)
	}
	return pflag.NormalizedName(name)
}

// aliasesOf returns the alternative spellings of a flag.
func (g *grammar) aliasesOf(name string) []string {
	var out []string
	for alias, target := range g.aliases {
		if target == name {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

func usageArgs(kind UsageKind, args cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, a []string) error {
		if err := args(cmd, a); err != nil {
			return &UsageError{Kind: kind, Err: err}
		}
		return nil
	}
}

func shellArg(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &UsageError{
			Kind: UsageInvalidArgument,
			Err:  fmt.Errorf("expected exactly one shell, got %d arguments", len(args)),
		}
	}
	if ok, errs := Shell(args[0]).IsValid(); !ok {
		return &UsageError{Kind: UsageInvalidArgument, Err: errors.Join(errs...)}
	}
	return nil
}

// registerValueCompletions offers the options of every enumerated flag.
func registerValueCompletions(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if ov, ok := f.Value.(optionsValue); ok {
			_ = cmd.RegisterFlagCompletionFunc(f.Name,
				cobra.FixedCompletions(ov.Options(), cobra.ShellCompDirectiveNoFileComp))
		}
	})
}
