// SPDX-License-Identifier: MPL-2.0

//go:build linux || darwin

package fdlimit

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func raise() (uint64, error) {
	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &limit); err != nil {
		return 0, fmt.Errorf("getrlimit: %w", err)
	}

	target := capLimit(limit.Max)
	if limit.Cur >= target {
		return limit.Cur, nil
	}

	limit.Cur = target
	if err := unix.Setrlimit(unix.RLIMIT_NOFILE, &limit); err != nil {
		return 0, fmt.Errorf("setrlimit: %w", err)
	}

	// The kernel may clamp the value; report what actually took effect.
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &limit); err != nil {
		return 0, fmt.Errorf("getrlimit: %w", err)
	}
	return limit.Cur, nil
}
