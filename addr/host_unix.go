//go:build unix

package addr

import (
	"golang.org/x/sys/unix"
)

// HostPageSize returns the operating system page size in bytes.
//
// On Unix systems this is getpagesize(2).
func HostPageSize() uint64 {
	return uint64(unix.Getpagesize())
}
