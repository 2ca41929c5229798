package ledger

import (
	"sort"

	"github.com/joshuapare/pageledger/addr"
)

// Ledger is a fixed-capacity, sorted set of non-overlapping regions inside
// an overall address window.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Ledger[V comparable] struct {
	limits  addr.Line
	regions []Region[V] // Backing array; len(regions) is the capacity
	n       int         // Active regions occupy regions[:n]
	gap     GapCheck
}

// New creates an empty ledger over limits with room for capacity regions.
//
// New never fails. A negative capacity is treated as zero, and a window with
// Start > End simply admits no region. If opts is nil, DefaultOptions is used.
func New[V comparable](limits addr.Line, capacity int, opts *Options) *Ledger[V] {
	if opts == nil {
		opts = &DefaultOptions
	}
	if capacity < 0 {
		capacity = 0
	}

	return &Ledger[V]{
		limits:  limits,
		regions: make([]Region[V], capacity),
		gap:     opts.Gap,
	}
}

// Regions returns a copy of the active regions in ascending address order.
func (l *Ledger[V]) Regions() []Region[V] {
	out := make([]Region[V], l.n)
	copy(out, l.active())
	return out
}

// Len returns the number of active regions.
func (l *Ledger[V]) Len() int {
	return l.n
}

// Cap returns the maximum number of regions the ledger can hold.
func (l *Ledger[V]) Cap() int {
	return len(l.regions)
}

// Limits returns the overall window of the ledger.
func (l *Ledger[V]) Limits() addr.Line {
	return l.limits
}

// Gap returns the FindFree acceptance test in use.
func (l *Ledger[V]) Gap() GapCheck {
	return l.gap
}

// Lookup returns the region containing a.
func (l *Ledger[V]) Lookup(a addr.Address) (Region[V], bool) {
	active := l.active()
	i := sort.Search(len(active), func(i int) bool {
		return active[i].Limits.End > a
	})
	if i < len(active) && active[i].Limits.ContainsAddr(a) {
		return active[i], true
	}
	return Region[V]{}, false
}

// Clone returns an independent copy of the ledger with the same capacity.
func (l *Ledger[V]) Clone() *Ledger[V] {
	regions := make([]Region[V], len(l.regions))
	copy(regions, l.regions)

	return &Ledger[V]{
		limits:  l.limits,
		regions: regions,
		n:       l.n,
		gap:     l.gap,
	}
}

// active returns the in-use prefix of the backing array.
func (l *Ledger[V]) active() []Region[V] {
	return l.regions[:l.n]
}

// sort orders the active regions by start address.
func (l *Ledger[V]) sort() {
	active := l.active()
	sort.Slice(active, func(i, j int) bool {
		return active[i].Limits.Start < active[j].Limits.Start
	})
}
