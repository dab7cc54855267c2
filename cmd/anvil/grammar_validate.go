// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/devnode/anvil/internal/issue"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrInvalidGrammar is wrapped by every ValidateGrammar failure.
var ErrInvalidGrammar = errors.New("invalid grammar")

var kebabCase = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// reservedFlags are added by cobra to every command.
var reservedFlags = map[string]string{"help": "h", "version": ""}

// ValidateGrammar checks the invocation grammar for internal consistency.
// It does not depend on any input and is meant to be run from tests.
func ValidateGrammar() error {
	return newGrammar(func(context.Context, *grammar, *Invocation) error { return nil }).validate()
}

func (g *grammar) validate() error {
	declared, problems := g.validateFlags()
	problems = append(problems, g.validateAliases(declared)...)
	problems = append(problems, g.validateRelations(declared)...)
	problems = append(problems, validateCommands(g.root)...)
	problems = append(problems, g.validateCompletions()...)
	problems = append(problems, validateHints()...)

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidGrammar, errors.Join(problems...))
}

// validateFlags checks names and shorthands across every flag set and
// returns the declared flag names.
func (g *grammar) validateFlags() (map[string]bool, []error) {
	var problems []error
	owners := make(map[string]string)
	shorthands := make(map[string]string)
	for _, short := range reservedFlags {
		if short != "" {
			shorthands[short] = "cobra"
		}
	}

	for _, set := range g.sets {
		set.flags.VisitAll(func(f *pflag.Flag) {
			if owner, ok := owners[f.Name]; ok {
				problems = append(problems, fmt.Errorf("flag --%s is declared in both %s and %s", f.Name, owner, set.name))
			}
			owners[f.Name] = set.name

			if _, ok := reservedFlags[f.Name]; ok {
				problems = append(problems, fmt.Errorf("flag --%s collides with a built-in flag", f.Name))
			}
			if !kebabCase.MatchString(f.Name) {
				problems = append(problems, fmt.Errorf("flag --%s is not lowercase kebab-case", f.Name))
			}
			if strings.TrimSpace(f.Usage) == "" {
				problems = append(problems, fmt.Errorf("flag --%s has no usage text", f.Name))
			}
			if f.Shorthand != "" {
				if owner, ok := shorthands[f.Shorthand]; ok {
					problems = append(problems, fmt.Errorf("shorthand -%s of --%s is already used by %s", f.Shorthand, f.Name, owner))
				}
				shorthands[f.Shorthand] = "--" + f.Name
			}
		})
	}

	declared := make(map[string]bool, len(owners))
	for name := range owners {
		declared[name] = true
	}
	return declared, problems
}

func (g *grammar) validateAliases(declared map[string]bool) []error {
	var problems []error
	for _, alias := range slices.Sorted(maps.Keys(g.aliases)) {
		target := g.aliases[alias]
		if declared[alias] {
			problems = append(problems, fmt.Errorf("alias --%s shadows a declared flag", alias))
		}
		if !declared[target] {
			problems = append(problems, fmt.Errorf("alias --%s targets unknown flag --%s", alias, target))
		}
		if !kebabCase.MatchString(alias) {
			problems = append(problems, fmt.Errorf("alias --%s is not lowercase kebab-case", alias))
		}
	}
	return problems
}

func (g *grammar) validateRelations(declared map[string]bool) []error {
	var problems []error
	for _, group := range g.conflicts {
		if len(group) < 2 {
			problems = append(problems, fmt.Errorf("conflict group %v needs at least two flags", group))
		}
		for _, name := range group {
			if !declared[name] {
				problems = append(problems, fmt.Errorf("conflict group %v names unknown flag --%s", group, name))
			}
		}
	}
	for _, req := range g.requires {
		if !declared[req.flag] {
			problems = append(problems, fmt.Errorf("requirement names unknown flag --%s", req.flag))
		}
		if !declared[req.needs] {
			problems = append(problems, fmt.Errorf("--%s requires unknown flag --%s", req.flag, req.needs))
		}
		if req.flag == req.needs {
			problems = append(problems, fmt.Errorf("--%s requires itself", req.flag))
		}
	}
	return problems
}

// validateCommands checks documentation and name uniqueness of cmd and its
// descendants. Names and aliases of siblings must be unique and must not be
// prefixes of each other.
func validateCommands(cmd *cobra.Command) []error {
	var problems []error
	if !cmd.Hidden && strings.TrimSpace(cmd.Short) == "" {
		problems = append(problems, fmt.Errorf("command %q has no short description", cmd.CommandPath()))
	}

	owners := make(map[string]string)
	for _, child := range cmd.Commands() {
		for _, name := range append([]string{child.Name()}, child.Aliases...) {
			if owner, ok := owners[name]; ok {
				problems = append(problems, fmt.Errorf("command name %q is used by both %s and %s", name, owner, child.Name()))
				continue
			}
			owners[name] = child.Name()
		}
		problems = append(problems, validateCommands(child)...)
	}

	names := slices.Sorted(maps.Keys(owners))
	for _, name := range names {
		for _, other := range names {
			if name != other && owners[name] != owners[other] && strings.HasPrefix(other, name) {
				problems = append(problems, fmt.Errorf("command name %q is a prefix of %q", name, other))
			}
		}
	}
	return problems
}

func (g *grammar) validateCompletions() []error {
	for _, child := range g.root.Commands() {
		if child.Name() != "completions" {
			continue
		}
		want := make([]string, 0, len(Shells()))
		for _, s := range Shells() {
			want = append(want, s.String())
		}
		if !slices.Equal(child.ValidArgs, want) {
			return []error{fmt.Errorf("completions accepts %v, want %v", child.ValidArgs, want)}
		}
		return nil
	}
	return []error{errors.New("completions command is missing")}
}

// validateHints checks that every usage kind with a hint points at a
// catalog entry carrying a message.
func validateHints() []error {
	documented := make(map[issue.Id]bool)
	for _, entry := range issue.Values() {
		documented[entry.Id()] = strings.TrimSpace(string(entry.MarkdownMsg())) != ""
	}

	var problems []error
	for kind := UsageInvalidArgument; kind <= UsageDisplayVersion; kind++ {
		id, ok := (&UsageError{Kind: kind}).hint()
		if ok && !documented[id] {
			problems = append(problems, fmt.Errorf("usage kind %q has no catalog entry", kind))
		}
	}
	if !documented[issue.InvalidShellId] {
		problems = append(problems, errors.New("invalid shell has no catalog entry"))
	}
	return problems
}
