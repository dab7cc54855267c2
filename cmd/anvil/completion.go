// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"text/template"

	"github.com/spf13/cobra"
)

// elvishTemplate delegates to cobra's hidden __complete command, which prints
// one "candidate<TAB>description" line per candidate followed by a
// ":<directive>" line. Directives are not interpreted.
var elvishTemplate = template.Must(template.New("elvish").Parse(`# elvish completion for {{.Name}}
use str

set edit:completion:arg-completer[{{.Name}}] = {|@words|
    var args = $words[1..]
    var lines = [({{.Name}} __complete $@args 2>/dev/null)]
    if (== (count $lines) 0) {
        return
    }
    for line [(take (- (count $lines) 1) $lines)] {
        var parts = [(str:split "\t" $line)]
        if (> (count $parts) 1) {
            edit:complex-candidate $parts[0] &display=$parts[0]' ('$parts[1]')'
        } else {
            edit:complex-candidate $parts[0]
        }
    }
}
`))

func writeCompletion(w io.Writer, root *cobra.Command, shell Shell) error {
	switch shell {
	case ShellBash:
		return root.GenBashCompletionV2(w, true)
	case ShellZsh:
		return root.GenZshCompletion(w)
	case ShellFish:
		return root.GenFishCompletion(w, true)
	case ShellPowerShell:
		return root.GenPowerShellCompletionWithDesc(w)
	case ShellElvish:
		return elvishTemplate.Execute(w, struct{ Name string }{Name: root.Name()})
	default:
		return &InvalidShellError{Value: shell}
	}
}
