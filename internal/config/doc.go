// SPDX-License-Identifier: MPL-2.0

// Package config reads the foundry.toml settings anvil depends on.
//
// Files are discovered from $FOUNDRY_CONFIG, or by walking up from the working
// directory, and are layered over the global ~/.foundry/foundry.toml. Each file
// is decoded as TOML, validated against an embedded CUE schema
// (foundry_schema.cue) and merged through Viper. The resulting [rpc_endpoints]
// table, overlaid by the active profile's table, is exposed as Endpoints and
// resolves --fork-url aliases.
package config
