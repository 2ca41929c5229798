package ledger

import (
	"fmt"

	"github.com/joshuapare/pageledger/addr"
)

// Region is one occupied, tagged range of the address space.
//
// The tag is optional: Valid reports whether Value is set. An untagged
// region is still a real occupied range (e.g. "mapped, no attribute").
type Region[V comparable] struct {
	// Limits is the half-open interval covered by the region.
	Limits addr.Line

	// Value is the tag. Meaningful only when Valid is true.
	Value V

	// Valid is true when the region carries a tag.
	Valid bool
}

// Tagged returns a region over limits carrying tag v.
func Tagged[V comparable](limits addr.Line, v V) Region[V] {
	return Region[V]{Limits: limits, Value: v, Valid: true}
}

// Untagged returns a region over limits with no tag.
func Untagged[V comparable](limits addr.Line) Region[V] {
	return Region[V]{Limits: limits}
}

// SameTag reports whether r and o carry equal tags. Two untagged regions
// have equal tags.
func (r Region[V]) SameTag(o Region[V]) bool {
	if r.Valid != o.Valid {
		return false
	}
	return !r.Valid || r.Value == o.Value
}

func (r Region[V]) String() string {
	if !r.Valid {
		return r.Limits.String()
	}
	return fmt.Sprintf("%s %v", r.Limits, r.Value)
}

// GapCheck selects how FindFree decides that a window has room.
type GapCheck uint8

const (
	// GapExact accepts a window when the free space between its two sides,
	// right.Start - left.End, is at least the requested length. Every
	// location it returns can be inserted.
	GapExact GapCheck = iota

	// GapSpan accepts a window when right.End - left.Start strictly exceeds
	// the requested length. Between two real regions this counts the regions
	// themselves as room, so a returned location may overlap a neighbour.
	// Kept for compatibility with ledgers that were sized against it.
	GapSpan
)

func (g GapCheck) String() string {
	switch g {
	case GapExact:
		return "exact"
	case GapSpan:
		return "span"
	default:
		return fmt.Sprintf("GapCheck(%d)", uint8(g))
	}
}

// Options configures a Ledger.
type Options struct {
	// Gap selects the FindFree acceptance test. Default: GapExact.
	Gap GapCheck
}

// DefaultOptions is used when New is passed nil options.
var DefaultOptions = Options{Gap: GapExact}
