// Package ledger records which page ranges of a bounded address space are in use.
//
// # Overview
//
// A Ledger is pure bookkeeping for a virtual memory manager. It holds no
// memory and makes no system calls; the caller maps and unmaps memory and
// consults the ledger to decide where a mapping may go. Each occupied range
// is a Region carrying an optional caller-defined tag (for example a
// permission set), and the ledger keeps at most a fixed number of them.
//
// # Ledger Operations
//
//   - New(limits, capacity, opts): Create an empty ledger over [start, end)
//   - Insert(region): Record a region, merging with an equal-tag neighbour
//   - FindFree(length, front): Locate a gap from the low or high end
//   - Regions(): Snapshot of the active regions in address order
//   - Lookup(addr): The region containing an address
//   - Verify(): Re-check the structural invariants
//
// There is no removal. The ledger only grows, by extending a region or by
// taking a new slot.
//
// # Usage Example
//
//	limits := addr.NewLine(0x1000, 0x10000)
//	l := ledger.New[Perm](limits, 16, nil)
//
//	// Pick a spot for two pages at the bottom of the window.
//	where, err := l.FindFree(addr.Pages(2), true)
//	if err != nil {
//	    return err
//	}
//
//	// Commit it.
//	if err := l.Insert(ledger.Tagged(where, PermRW)); err != nil {
//	    return err
//	}
//
// # Merging
//
// Inserting a region that touches an existing region with an equal tag
// extends the existing region instead of using a slot:
//
//	[0x4000-0x5000 T] [0x8000-0x9000 T] + [0x5000-0x6000 T]
//	  → [0x4000-0x6000 T] [0x8000-0x9000 T]
//
// Only one neighbour is extended per insertion. Filling the hole between two
// equal-tag regions extends the left one and leaves two touching regions;
// the merges never cascade.
//
// # Capacity
//
// Capacity is fixed at construction and the backing array is allocated once.
// Size it for the largest number of distinct, non-contiguous regions the
// embedding system can hold at the same time, not for the number of
// insertions over the ledger's lifetime.
//
// # Free-Space Search
//
// FindFree walks the gaps between a zero-width marker at the lower limit,
// the regions in order, and a zero-width marker at the upper limit. The
// acceptance test is selected by Options.Gap; see GapExact and GapSpan.
//
// # Thread Safety
//
// Ledger instances are not thread-safe, and a FindFree followed by Insert is
// a check-then-act sequence. Callers must hold one exclusive lock across both
// or use pkg/vmmap, which does.
package ledger
