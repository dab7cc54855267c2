// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type (
	// figName is a Fig name: a single string, or an array when there are aliases.
	figName []string

	figCommand struct {
		Name        figName      `json:"name"`
		Description string       `json:"description,omitempty"`
		Subcommands []figCommand `json:"subcommands,omitempty"`
		Options     []figOption  `json:"options,omitempty"`
		Args        []figArg     `json:"args,omitempty"`
	}

	figOption struct {
		Name         figName  `json:"name"`
		Description  string   `json:"description,omitempty"`
		IsRepeatable bool     `json:"isRepeatable,omitempty"`
		ExclusiveOn  []string `json:"exclusiveOn,omitempty"`
		DependsOn    []string `json:"dependsOn,omitempty"`
		Args         []figArg `json:"args,omitempty"`
	}

	figArg struct {
		Name        string   `json:"name,omitempty"`
		IsOptional  bool     `json:"isOptional,omitempty"`
		Suggestions []string `json:"suggestions,omitempty"`
		Template    string   `json:"template,omitempty"`
	}
)

func (n figName) MarshalJSON() ([]byte, error) {
	if len(n) == 1 {
		return json.Marshal(n[0])
	}
	return json.Marshal([]string(n))
}

func (n *figName) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*n = figName{single}
		return nil
	}
	return json.Unmarshal(data, (*[]string)(n))
}

// writeFigSpec writes the grammar as a Fig completion spec (TypeScript).
func writeFigSpec(w io.Writer, g *grammar) error {
	body, err := json.MarshalIndent(g.figCommand(g.root), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode fig spec: %w", err)
	}
	_, err = fmt.Fprintf(w, "const completionSpec: Fig.Spec = %s;\n\nexport default completionSpec;\n", body)
	return err
}

func (g *grammar) figCommand(cmd *cobra.Command) figCommand {
	cmd.InitDefaultHelpFlag()
	if cmd == g.root {
		cmd.InitDefaultVersionFlag()
	}

	fc := figCommand{
		Name:        append(figName{cmd.Name()}, cmd.Aliases...),
		Description: cmd.Short,
	}
	for _, child := range cmd.Commands() {
		if child.Hidden {
			continue
		}
		fc.Subcommands = append(fc.Subcommands, g.figCommand(child))
	}
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			fc.Options = append(fc.Options, g.figOption(f))
		}
	})
	if len(cmd.ValidArgs) > 0 {
		fc.Args = []figArg{{Name: positionalName(cmd), Suggestions: cmd.ValidArgs}}
	}
	return fc
}

func (g *grammar) figOption(f *pflag.Flag) figOption {
	varname, usage := pflag.UnquoteUsage(f)

	names := figName{"--" + f.Name}
	for _, alias := range g.aliasesOf(f.Name) {
		names = append(names, "--"+alias)
	}
	if f.Shorthand != "" {
		names = append(names, "-"+f.Shorthand)
	}

	opt := figOption{
		Name:         names,
		Description:  usage,
		IsRepeatable: strings.HasSuffix(f.Value.Type(), "Slice") || strings.HasSuffix(f.Value.Type(), "Array"),
	}
	for _, group := range g.conflicts {
		if !slices.Contains(group, f.Name) {
			continue
		}
		for _, other := range group {
			if other != f.Name {
				opt.ExclusiveOn = append(opt.ExclusiveOn, "--"+other)
			}
		}
	}
	for _, req := range g.requires {
		if req.flag == f.Name {
			opt.DependsOn = append(opt.DependsOn, "--"+req.needs)
		}
	}

	if f.Value.Type() != "bool" {
		arg := figArg{Name: varname, IsOptional: f.NoOptDefVal != ""}
		if ov, ok := f.Value.(optionsValue); ok {
			arg.Suggestions = ov.Options()
		}
		if _, ok := f.Annotations[cobra.BashCompFilenameExt]; ok {
			arg.Template = "filepaths"
		}
		opt.Args = []figArg{arg}
	}
	return opt
}

// positionalName extracts "shell" from a use line such as "completions <shell>".
func positionalName(cmd *cobra.Command) string {
	fields := strings.Fields(cmd.Use)
	if len(fields) < 2 {
		return ""
	}
	return strings.Trim(fields[1], "<>[]")
}
