package addr

import (
	"fmt"

	"github.com/joshuapare/pageledger/internal/bounds"
)

// PageSize is the unit of the address domain (4KB).
const PageSize = 0x1000

// Address is a byte address in the tracked address space.
type Address uint64

// Offset is a length in bytes.
type Offset uint64

// Pages returns the length of n pages. It wraps on overflow; use CheckedPages
// when n is untrusted.
func Pages(n uint64) Offset {
	return Offset(n * PageSize)
}

// CheckedPages returns the length of n pages, or ok = false if it does not fit.
func CheckedPages(n uint64) (Offset, bool) {
	v, ok := bounds.MulOverflowSafe(n, PageSize)
	return Offset(v), ok
}

// Add returns a+o. It wraps on overflow; use CheckedAdd when o is untrusted.
func (a Address) Add(o Offset) Address {
	return a + Address(o)
}

// Sub returns a-o. It wraps on underflow; use CheckedSub when o is untrusted.
func (a Address) Sub(o Offset) Address {
	return a - Address(o)
}

// Diff returns the length from b up to a. The caller must ensure b <= a.
func (a Address) Diff(b Address) Offset {
	return Offset(a - b)
}

// CheckedAdd returns a+o, or ok = false if the result does not fit.
func (a Address) CheckedAdd(o Offset) (Address, bool) {
	v, ok := bounds.AddOverflowSafe(uint64(a), uint64(o))
	return Address(v), ok
}

// CheckedSub returns a-o, or ok = false if the result would be negative.
func (a Address) CheckedSub(o Offset) (Address, bool) {
	v, ok := bounds.SubOverflowSafe(uint64(a), uint64(o))
	return Address(v), ok
}

// CheckedDiff returns the length from b up to a, or ok = false if b > a.
func (a Address) CheckedDiff(b Address) (Offset, bool) {
	v, ok := bounds.SubOverflowSafe(uint64(a), uint64(b))
	return Offset(v), ok
}

func (a Address) String() string {
	return fmt.Sprintf("%#x", uint64(a))
}

// Pages returns the number of whole pages in o.
func (o Offset) Pages() uint64 {
	return uint64(o) / PageSize
}

func (o Offset) String() string {
	return fmt.Sprintf("%#x", uint64(o))
}
