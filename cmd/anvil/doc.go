// SPDX-License-Identifier: MPL-2.0

// Package cmd is the anvil command-line front end.
//
// It owns the invocation grammar, parses arguments into an Invocation, and
// dispatches either to a one-shot generator (shell completions, Fig spec) or
// to node startup. Completion scripts and the Fig spec are derived from the
// same cobra tree the parser uses.
package cmd
