// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"
)

// ErrUnresolvedEnv is the sentinel error wrapped by UnresolvedEnvError.
var ErrUnresolvedEnv = errors.New("unresolved environment variable")

type (
	// Endpoint is one entry of the [rpc_endpoints] table. Raw may reference
	// environment variables as ${VAR}.
	Endpoint struct {
		Alias string
		Raw   string
	}

	// Endpoints maps lower-cased aliases to endpoints.
	Endpoints map[string]Endpoint

	// UnresolvedEnvError is returned when an endpoint references an unset variable.
	UnresolvedEnvError struct {
		Alias    string
		Variable string
	}
)

// Error implements the error interface for UnresolvedEnvError.
func (e *UnresolvedEnvError) Error() string {
	return fmt.Sprintf("rpc endpoint %q references unset environment variable %q", e.Alias, e.Variable)
}

// Unwrap returns ErrUnresolvedEnv for errors.Is() compatibility.
func (e *UnresolvedEnvError) Unwrap() error { return ErrUnresolvedEnv }

// URL expands environment references in the endpoint using lookup. A
// reference with a default, such as ${KEY:-public}, may be left unset.
func (ep Endpoint) URL(lookup func(string) (string, bool)) (string, error) {
	required, err := requiredVars(ep.Raw)
	if err != nil {
		return "", fmt.Errorf("rpc endpoint %q: %w", ep.Alias, err)
	}
	for _, name := range required {
		if _, ok := lookup(name); !ok {
			return "", &UnresolvedEnvError{Alias: ep.Alias, Variable: name}
		}
	}

	expanded, err := shell.Expand(ep.Raw, func(name string) string {
		value, _ := lookup(name)
		return value
	})
	if err != nil {
		return "", fmt.Errorf("rpc endpoint %q: %w", ep.Alias, err)
	}
	return expanded, nil
}

// Resolve returns the canonical URL for alias. Only values that look like a
// URL or a path (they contain ':' or '/') are accepted on either side, so a
// resolved value never resolves again. An alias whose endpoint cannot be
// expanded does not resolve.
func (e Endpoints) Resolve(alias string) (string, bool) {
	if !IsAlias(alias) {
		return "", false
	}
	ep, ok := e[strings.ToLower(alias)]
	if !ok {
		return "", false
	}
	url, err := ep.URL(os.LookupEnv)
	if err != nil || IsAlias(url) {
		return "", false
	}
	return url, true
}

// IsAlias reports whether value is shaped like an endpoint alias rather than
// a URL or path.
func IsAlias(value string) bool {
	return value != "" && !strings.ContainsAny(value, ":/")
}

// requiredVars lists, in order of appearance, the variables raw references
// without a default or alternate value.
func requiredVars(raw string) ([]string, error) {
	word, err := syntax.NewParser().Document(strings.NewReader(raw))
	if err != nil {
		return nil, err
	}
	var names []string
	syntax.Walk(word, func(node syntax.Node) bool {
		pe, ok := node.(*syntax.ParamExp)
		if !ok || pe.Param == nil || pe.Exp != nil {
			return true
		}
		if !slices.Contains(names, pe.Param.Value) {
			names = append(names, pe.Param.Value)
		}
		return true
	})
	return names, nil
}

// Aliases returns the known aliases in sorted order.
func (e Endpoints) Aliases() []string {
	aliases := make([]string, 0, len(e))
	for alias := range e {
		aliases = append(aliases, alias)
	}
	slices.Sort(aliases)
	return aliases
}

// merge overlays raw table entries onto e. Entries are either a URL string or
// a table with a url key.
func (e Endpoints) merge(raw map[string]any) {
	for alias, value := range raw {
		key := strings.ToLower(alias)
		switch v := value.(type) {
		case string:
			e[key] = Endpoint{Alias: key, Raw: v}
		case map[string]any:
			if url, ok := v["url"].(string); ok {
				e[key] = Endpoint{Alias: key, Raw: url}
			}
		}
	}
}
