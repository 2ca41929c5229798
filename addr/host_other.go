//go:build !unix

package addr

// HostPageSize returns the operating system page size in bytes.
//
// Platforms without a getpagesize equivalent report PageSize.
func HostPageSize() uint64 {
	return PageSize
}
