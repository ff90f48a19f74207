//go:build !windows

package sysinfo

import "os"

// IsElevated reports whether the process runs with root privileges.
func IsElevated() bool {
	return os.Geteuid() == 0
}
