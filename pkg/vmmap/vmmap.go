package vmmap

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/joshuapare/pageledger/addr"
	"github.com/joshuapare/pageledger/internal/logger"
	"github.com/joshuapare/pageledger/ledger"
)

// Map is a concurrency-safe address space map backed by a ledger.
type Map[V comparable] struct {
	mu     sync.Mutex
	ledger *ledger.Ledger[V]

	// pages has bit i set when page limits.Start+i*PageSize is occupied.
	// nil when the bitmap is disabled.
	pages *bitset.BitSet

	log *slog.Logger
}

// New creates an empty map over limits. Both ends of limits must be page
// aligned. If opts is nil, DefaultOptions is used.
func New[V comparable](limits addr.Line, opts *Options) (*Map[V], error) {
	if opts == nil {
		opts = &DefaultOptions
	}
	if !addr.IsAligned(limits.Start) || !addr.IsAligned(limits.End) {
		return nil, fmt.Errorf("vmmap: window %s: %w", limits, ErrUnaligned)
	}

	capacity := opts.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}

	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	m := &Map[V]{
		ledger: ledger.New[V](limits, capacity, &ledger.Options{Gap: opts.Gap}),
		log:    log,
	}

	if opts.PageBitmap {
		n := limits.Len().Pages()
		if n > MaxBitmapPages {
			return nil, fmt.Errorf("vmmap: window %s has %d pages: %w", limits, n, ErrWindowTooLarge)
		}
		m.pages = bitset.New(uint(n))
	}

	if host := addr.HostPageSize(); host%addr.PageSize != 0 {
		log.Warn("host page size is not a multiple of the ledger page",
			"host", host, "ledger", addr.PageSize)
	}

	return m, nil
}

// Reserve finds room for pages pages, from the low end when front is set or
// the high end otherwise, and records it with tag under one lock hold.
func (m *Map[V]) Reserve(pages uint64, front bool, tag V) (addr.Line, error) {
	return m.reserve(pages, front, func(l addr.Line) ledger.Region[V] {
		return ledger.Tagged(l, tag)
	})
}

// ReserveUntagged is Reserve for a region with no tag.
func (m *Map[V]) ReserveUntagged(pages uint64, front bool) (addr.Line, error) {
	return m.reserve(pages, front, ledger.Untagged[V])
}

func (m *Map[V]) reserve(pages uint64, front bool, region func(addr.Line) ledger.Region[V]) (addr.Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	where, err := m.findLocked(pages, front)
	if err != nil {
		m.log.Warn("reserve failed", "pages", pages, "front", front, "error", err)
		return addr.Line{}, fmt.Errorf("vmmap: reserve %d pages: %w", pages, err)
	}

	if err := m.insertLocked(region(where)); err != nil {
		return addr.Line{}, fmt.Errorf("vmmap: reserve %d pages: %w", pages, err)
	}
	return where, nil
}

// MapFixed records a caller-chosen location with tag.
func (m *Map[V]) MapFixed(line addr.Line, tag V) error {
	return m.Insert(ledger.Tagged(line, tag))
}

// MapUntagged records a caller-chosen location with no tag. It merges only
// with adjacent untagged regions.
func (m *Map[V]) MapUntagged(line addr.Line) error {
	return m.Insert(ledger.Untagged[V](line))
}

// Insert records r. Both ends of r.Limits must be page aligned.
func (m *Map[V]) Insert(r ledger.Region[V]) error {
	if !addr.IsAligned(r.Limits.Start) || !addr.IsAligned(r.Limits.End) {
		return fmt.Errorf("vmmap: insert %s (pages cover %s): %w", r.Limits, addr.AlignLine(r.Limits), ErrUnaligned)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.insertLocked(r); err != nil {
		return fmt.Errorf("vmmap: %w", err)
	}
	return nil
}

// FindFree reports where Reserve would currently place pages pages without
// recording anything. The answer may be stale by the time it is used.
func (m *Map[V]) FindFree(pages uint64, front bool) (addr.Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.findLocked(pages, front)
}

// findLocked runs the ledger search for pages pages. m.mu must be held.
func (m *Map[V]) findLocked(pages uint64, front bool) (addr.Line, error) {
	length, ok := addr.CheckedPages(pages)
	if !ok {
		return addr.Line{}, fmt.Errorf("%d pages overflow the address space: %w", pages, ledger.ErrOutOfSpace)
	}
	return m.ledger.FindFree(length, front)
}

// Mapped reports whether a lies inside a recorded region.
func (m *Map[V]) Mapped(a addr.Address) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pages == nil {
		_, ok := m.ledger.Lookup(a)
		return ok
	}

	idx, ok := m.pageIndex(a)
	return ok && m.pages.Test(idx)
}

// Lookup returns the region containing a.
func (m *Map[V]) Lookup(a addr.Address) (ledger.Region[V], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ledger.Lookup(a)
}

// Regions returns a snapshot of the recorded regions in address order.
func (m *Map[V]) Regions() []ledger.Region[V] {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ledger.Regions()
}

// Limits returns the window covered by the map.
func (m *Map[V]) Limits() addr.Line {
	return m.ledger.Limits()
}

// insertLocked commits r to the ledger and the bitmap. m.mu must be held.
func (m *Map[V]) insertLocked(r ledger.Region[V]) error {
	if err := m.ledger.Insert(r); err != nil {
		m.log.Warn("insert rejected", "range", r.Limits.String(), "error", err)
		return err
	}

	if m.pages != nil {
		first, _ := m.pageIndex(r.Limits.Start)
		for i := range uint(r.Limits.Len().Pages()) {
			m.pages.Set(first + i)
		}
	}

	m.log.Debug("insert",
		"range", r.Limits.String(),
		"tagged", r.Valid,
		"tag", r.Value,
		"regions", m.ledger.Len())
	return nil
}

// pageIndex returns the bitmap index of the page holding a.
func (m *Map[V]) pageIndex(a addr.Address) (uint, bool) {
	limits := m.ledger.Limits()
	if !limits.ContainsAddr(a) {
		return 0, false
	}
	return uint(addr.AlignDown(a).Diff(limits.Start).Pages()), true
}
