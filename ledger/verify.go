package ledger

import "fmt"

// Verify checks the structural invariants of the ledger and returns an error
// wrapping ErrCorrupt for the first violation found:
//
//   - every active region is non-empty and inside the limits
//   - active regions are sorted by start and do not overlap
//   - no unused slot holds data
//
// Touching regions with equal tags are not reported; a single insertion
// merges with one neighbour only, so they can legitimately occur.
func (l *Ledger[V]) Verify() error {
	if l.n < 0 || l.n > len(l.regions) {
		return fmt.Errorf("%d active regions with capacity %d: %w", l.n, len(l.regions), ErrCorrupt)
	}

	active := l.active()
	for i, r := range active {
		if r.Limits.IsEmpty() {
			return fmt.Errorf("region %d %s is empty: %w", i, r.Limits, ErrCorrupt)
		}
		if !l.limits.ContainsLine(r.Limits) {
			return fmt.Errorf("region %d %s outside limits %s: %w", i, r.Limits, l.limits, ErrCorrupt)
		}
		if i == 0 {
			continue
		}
		prev := active[i-1]
		if prev.Limits.Start >= r.Limits.Start {
			return fmt.Errorf("regions %d and %d out of order: %w", i-1, i, ErrCorrupt)
		}
		if prev.Limits.Overlaps(r.Limits) {
			return fmt.Errorf("region %d %s overlaps %s: %w", i, r.Limits, prev.Limits, ErrCorrupt)
		}
	}

	var empty Region[V]
	for i := l.n; i < len(l.regions); i++ {
		if l.regions[i] != empty {
			return fmt.Errorf("unused slot %d holds %s: %w", i, l.regions[i].Limits, ErrCorrupt)
		}
	}

	return nil
}
