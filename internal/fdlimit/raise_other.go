// SPDX-License-Identifier: MPL-2.0

//go:build !linux && !darwin

package fdlimit

func raise() (uint64, error) {
	return 0, ErrUnsupported
}
