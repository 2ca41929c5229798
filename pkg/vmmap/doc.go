// Package vmmap is the embedding layer a virtual memory manager puts around a ledger.
//
// A ledger.Ledger is unsynchronized, and choosing a location with FindFree
// and committing it with Insert is a check-then-act sequence. Map holds one
// mutex across both steps, enforces page alignment at the boundary, and
// optionally keeps a page bitmap so "is this address mapped" is a single
// bit test.
//
// # Usage
//
//	m, err := vmmap.New[Perm](addr.NewLine(0x1000, 0x7fff_ffff_f000), &vmmap.Options{
//	    Capacity: 256,
//	    Logger:   slog.Default(),
//	})
//	if err != nil {
//	    return err
//	}
//
//	// mmap(NULL, 8 pages, ...) → pick a spot and record it atomically.
//	where, err := m.Reserve(8, false, PermRW)
//
//	// mmap(addr, ..., MAP_FIXED) → caller-chosen location.
//	err = m.MapFixed(addr.NewLine(0x400000, 0x401000), PermRX)
//
// # Thread Safety
//
// All Map methods are safe for concurrent use.
package vmmap
