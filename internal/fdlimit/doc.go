// SPDX-License-Identifier: MPL-2.0

// Package fdlimit raises the process open-file soft limit towards its hard
// limit. A development node holds one descriptor per client connection and
// per cached fork database, so the default soft limit on macOS (256) is easy
// to exhaust.
package fdlimit
