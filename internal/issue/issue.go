// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	UnknownArgumentId Id = iota + 1
	InvalidValueId
	ConflictingOptionsId
	InvalidShellId
	FoundryConfigInvalidId
	NodeRunFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id
	mdMsg    MarkdownMsg
	docLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the issue as terminal markdown using the glamour style at
// stylePath ("dark", "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

const anvilDocs HttpLink = "https://book.getfoundry.sh/reference/anvil/"

var (
	render = glamour.Render

	unknownArgumentIssue = &Issue{
		id: UnknownArgumentId,
		mdMsg: `
# Unknown argument

anvil does not recognize one of the arguments you passed.

## Things you can try
- List every option:
~~~
$ anvil --help
~~~
- Some options have older spellings that still work, such as
  ` + "`--rpc-url`" + ` for ` + "`--fork-url`" + ` and ` + "`--blocktime`" + ` for ` + "`--block-time`" + `.`,
		docLinks: []HttpLink{anvilDocs},
	}

	invalidValueIssue = &Issue{
		id: InvalidValueId,
		mdMsg: `
# Invalid option value

A value could not be parsed for the option it was given to.

## Things you can try
- Numbers are decimal, or hexadecimal with a ` + "`0x`" + ` prefix where noted
- ` + "`--block-time`" + ` accepts fractional seconds, e.g. ` + "`0.5`" + `
- ` + "`--hardfork`" + ` and ` + "`--order`" + ` accept a fixed set of names; press TAB to list them`,
		docLinks: []HttpLink{anvilDocs},
	}

	conflictingOptionsIssue = &Issue{
		id: ConflictingOptionsId,
		mdMsg: `
# Conflicting options

Two options were passed that cannot be used together, or an option was
passed without one it depends on.

## Common cases
- ` + "`--no-mining`" + ` cannot be combined with ` + "`--block-time`" + `
- ` + "`--state`" + ` replaces ` + "`--init`" + `, ` + "`--load-state`" + ` and ` + "`--dump-state`" + `
- Fork tuning options such as ` + "`--fork-block-number`" + ` need ` + "`--fork-url`",
		docLinks: []HttpLink{anvilDocs},
	}

	invalidShellIssue = &Issue{
		id: InvalidShellId,
		mdMsg: `
# Unsupported shell

Completions can be generated for bash, elvish, fish, powershell and zsh.

~~~
$ anvil completions zsh > "${fpath[1]}/_anvil"
~~~`,
	}

	foundryConfigInvalidIssue = &Issue{
		id: FoundryConfigInvalidId,
		mdMsg: `
# foundry.toml could not be read

anvil reads the ` + "`[rpc_endpoints]`" + ` table of foundry.toml to resolve
` + "`--fork-url`" + ` aliases. The file was ignored.

## Example
~~~toml
[rpc_endpoints]
mainnet = "https://eth-mainnet.example/v2/${ALCHEMY_KEY}"
optimism = { url = "https://optimism.example" }
~~~`,
		docLinks: []HttpLink{"https://book.getfoundry.sh/reference/config/"},
	}

	nodeRunFailedIssue = &Issue{
		id: NodeRunFailedId,
		mdMsg: `
# The node stopped with an error

## Things you can try
- Check that ` + "`--port`" + ` is free, or pass ` + "`--port 0`" + ` for any free port
- Check that every ` + "`--host`" + ` is an address of this machine
- When forking, check that the RPC endpoint is reachable`,
		docLinks: []HttpLink{anvilDocs},
	}

	issues = map[Id]*Issue{
		unknownArgumentIssue.Id():      unknownArgumentIssue,
		invalidValueIssue.Id():         invalidValueIssue,
		conflictingOptionsIssue.Id():   conflictingOptionsIssue,
		invalidShellIssue.Id():         invalidShellIssue,
		foundryConfigInvalidIssue.Id(): foundryConfigInvalidIssue,
		nodeRunFailedIssue.Id():        nodeRunFailedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	ids := make([]Id, 0, len(issues))
	for id := range maps.Keys(issues) {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
