// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail fast and register their
// own cleanup: environment variables, the working directory and fixture files.
package testutil
