// SPDX-License-Identifier: MPL-2.0

package fdlimit

import "errors"

// ErrUnsupported is returned on platforms without RLIMIT_NOFILE.
var ErrUnsupported = errors.New("file descriptor limits are not supported on this platform")

// Raise lifts the soft RLIMIT_NOFILE to the highest value the platform
// allows and returns the limit now in effect. When the soft limit is
// already at the cap it is left as-is.
func Raise() (uint64, error) {
	return raise()
}
