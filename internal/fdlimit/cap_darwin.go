// SPDX-License-Identifier: MPL-2.0

//go:build darwin

package fdlimit

import "golang.org/x/sys/unix"

// openMax is OPEN_MAX from <sys/syslimits.h>, used when the sysctl is unavailable.
const openMax = 10240

// capLimit bounds hard by kern.maxfilesperproc. setrlimit rejects anything
// larger even when the hard limit reports RLIM_INFINITY.
func capLimit(hard uint64) uint64 {
	ceiling := uint64(openMax)
	if v, err := unix.SysctlUint32("kern.maxfilesperproc"); err == nil && v > 0 {
		ceiling = uint64(v)
	}
	return min(hard, ceiling)
}
