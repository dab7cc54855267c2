// SPDX-License-Identifier: MPL-2.0

//go:build linux

package fdlimit

func capLimit(hard uint64) uint64 {
	return hard
}
