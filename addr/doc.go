// Package addr provides the page-granular address domain used by the ledger.
//
// # Overview
//
// Addresses and lengths are plain uint64 byte quantities wrapped in distinct
// types so that an Address can never be passed where an Offset is expected:
//
//   - Address: a position in the tracked address space
//   - Offset:  a length in bytes (the difference of two addresses)
//   - Line:    a half-open interval [Start, End) of addresses
//
// Arithmetic follows the usual rules: subtracting two addresses produces an
// Offset, and adding an Offset to an Address produces an Address.
//
// # Page Granularity
//
// All values are expected to be multiples of PageSize (4KB). Nothing in
// this package enforces that; AlignUp, AlignDown and IsAligned are provided
// for callers that need to quantize raw byte values first:
//
//	Pages(2)            = 0x2000
//	AlignUp(0x1001)     = 0x2000
//	AlignDown(0x1fff)   = 0x1000
//	PageCount(0x3000)   = 3
//
// # Intersection
//
// Line.Intersection reports the non-empty intersection of two intervals.
// Touching intervals such as [0x1000, 0x2000) and [0x2000, 0x3000) do not
// intersect.
package addr
