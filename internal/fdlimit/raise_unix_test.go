// SPDX-License-Identifier: MPL-2.0

//go:build linux || darwin

package fdlimit

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestRaise_ReachesCap(t *testing.T) {
	t.Parallel()

	got, err := Raise()
	if err != nil {
		t.Fatalf("Raise() error = %v", err)
	}

	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &limit); err != nil {
		t.Fatalf("Getrlimit() error = %v", err)
	}
	if limit.Cur != got {
		t.Errorf("soft limit = %d, Raise() reported %d", limit.Cur, got)
	}
	if want := capLimit(limit.Max); limit.Cur < want {
		t.Errorf("soft limit = %d, want at least %d", limit.Cur, want)
	}
}
