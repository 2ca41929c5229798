package ledger

import "fmt"

// Insert records r in the ledger.
//
// Insert fails with ErrInvalidRegion if r is empty or leaves the ledger's
// limits, with ErrOverlap if r intersects an active region, and with
// ErrOutOfCapacity if r cannot be merged and every slot is in use. A failed
// Insert leaves the ledger unchanged.
//
// If an active region with an equal tag ends exactly where r starts, or
// starts exactly where r ends, that region is extended to cover r and no
// slot is used. At most one region is extended per call.
func (l *Ledger[V]) Insert(r Region[V]) error {
	if r.Limits.Start >= r.Limits.End {
		return fmt.Errorf("insert %s: empty range: %w", r.Limits, ErrInvalidRegion)
	}
	if !l.limits.ContainsLine(r.Limits) {
		return fmt.Errorf("insert %s: outside limits %s: %w", r.Limits, l.limits, ErrInvalidRegion)
	}

	// Walk the regions pairwise as (prev, next). Overlap with either side is
	// checked before any merge at this position can commit. Position -1 pairs
	// nothing with the first region so that it can be extended backward too.
	active := l.active()
	for i := -1; i < len(active); i++ {
		var prev, next *Region[V]
		if i >= 0 {
			prev = &active[i]
		}
		if i+1 < len(active) {
			next = &active[i+1]
		}

		if prev != nil && prev.Limits.Overlaps(r.Limits) {
			return fmt.Errorf("insert %s: conflicts with %s: %w", r.Limits, prev.Limits, ErrOverlap)
		}
		if next != nil && next.Limits.Overlaps(r.Limits) {
			return fmt.Errorf("insert %s: conflicts with %s: %w", r.Limits, next.Limits, ErrOverlap)
		}

		// Merge into prev.
		if prev != nil && prev.SameTag(r) && prev.Limits.End == r.Limits.Start {
			prev.Limits.End = r.Limits.End
			return nil
		}

		// Merge into next.
		if next != nil && next.SameTag(r) && next.Limits.Start == r.Limits.End {
			next.Limits.Start = r.Limits.Start
			return nil
		}
	}

	if l.n >= len(l.regions) {
		return fmt.Errorf("insert %s: %d regions in use: %w", r.Limits, l.n, ErrOutOfCapacity)
	}

	l.regions[l.n] = r
	l.n++
	l.sort()
	return nil
}
