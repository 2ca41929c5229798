package addr

// Alignment utilities for page-granular values.

// pageMask selects the in-page bits of a byte value.
const pageMask = PageSize - 1

// AlignUp returns a rounded up to the next page boundary.
//
// Example:
//
//	AlignUp(1)      = 0x1000
//	AlignUp(0x1000) = 0x1000
//	AlignUp(0x1001) = 0x2000
func AlignUp(a Address) Address {
	return (a + pageMask) &^ pageMask
}

// AlignDown returns a rounded down to its page boundary.
//
// Example:
//
//	AlignDown(0x1fff) = 0x1000
//	AlignDown(0x2000) = 0x2000
func AlignDown(a Address) Address {
	return a &^ pageMask
}

// IsAligned reports whether a sits on a page boundary.
func IsAligned(a Address) bool {
	return a&pageMask == 0
}

// PageCount returns the number of pages needed to hold o bytes.
func PageCount(o Offset) uint64 {
	return (uint64(o) + pageMask) / PageSize
}

// AlignLine widens l outward so that both ends sit on page boundaries.
func AlignLine(l Line) Line {
	return Line{Start: AlignDown(l.Start), End: AlignUp(l.End)}
}
