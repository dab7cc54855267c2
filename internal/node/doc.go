// SPDX-License-Identifier: MPL-2.0

// Package node holds the node startup options and the node-run boundary.
//
// Config is the bundle the command line is parsed into. Runner is the single
// operation the front end needs from a node: run it to completion. DevNode is
// the default Runner. It owns the listener lifecycle and answers the identity
// JSON-RPC methods; chain state and execution live behind the same boundary
// and are not implemented here.
package node
