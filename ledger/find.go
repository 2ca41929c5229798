package ledger

import (
	"fmt"

	"github.com/joshuapare/pageledger/addr"
)

// FindFree returns a location for a new region of the given length.
//
// The search looks at windows formed by consecutive pairs drawn from a
// zero-width marker at the lower limit, the active regions in order, and a
// zero-width marker at the upper limit. With front set, windows are tried
// from low to high addresses and the result starts right after the window's
// left side; otherwise they are tried from high to low and the result ends
// right before the window's right side.
//
// FindFree does not reserve anything. The caller must follow up with Insert
// while still holding whatever lock serializes access to the ledger.
func (l *Ledger[V]) FindFree(length addr.Offset, front bool) (addr.Line, error) {
	if length == 0 {
		return addr.Line{}, fmt.Errorf("find free: zero length: %w", ErrInvalidRegion)
	}

	windows := l.n + 1
	if front {
		for k := 0; k < windows; k++ {
			if line, ok := l.fit(l.edge(k), l.edge(k+1), length, true); ok {
				return line, nil
			}
		}
	} else {
		for k := windows - 1; k >= 0; k-- {
			if line, ok := l.fit(l.edge(k), l.edge(k+1), length, false); ok {
				return line, nil
			}
		}
	}

	return addr.Line{}, fmt.Errorf("find free %s (%d pages): %w", length, length.Pages(), ErrOutOfSpace)
}

// edge returns element k of the marker-bracketed sequence: the lower marker
// at 0, the active regions at 1..n, the upper marker at n+1.
func (l *Ledger[V]) edge(k int) addr.Line {
	switch {
	case k == 0:
		return addr.NewLine(l.limits.Start, l.limits.Start)
	case k > l.n:
		return addr.NewLine(l.limits.End, l.limits.End)
	default:
		return l.regions[k-1].Limits
	}
}

// fit applies the configured acceptance test to the window (left, right) and
// returns the candidate location when it passes.
func (l *Ledger[V]) fit(left, right addr.Line, length addr.Offset, front bool) (addr.Line, bool) {
	switch l.gap {
	case GapSpan:
		span, ok := right.End.CheckedDiff(left.Start)
		if !ok || span <= length {
			return addr.Line{}, false
		}
	default:
		gap, ok := right.Start.CheckedDiff(left.End)
		if !ok || gap < length {
			return addr.Line{}, false
		}
	}

	if front {
		end, ok := left.End.CheckedAdd(length)
		if !ok {
			return addr.Line{}, false
		}
		return addr.NewLine(left.End, end), true
	}

	start, ok := right.Start.CheckedSub(length)
	if !ok {
		return addr.Line{}, false
	}
	return addr.NewLine(start, right.Start), true
}
