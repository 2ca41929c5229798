package ledger

import "errors"

var (
	// ErrInvalidRegion indicates a region with non-positive length, or one that
	// extends outside the ledger's limits.
	ErrInvalidRegion = errors.New("ledger: invalid region")

	// ErrOverlap indicates that a region intersects an existing region.
	ErrOverlap = errors.New("ledger: region overlaps an existing region")

	// ErrOutOfCapacity indicates that every slot is in use and the region could not be merged.
	ErrOutOfCapacity = errors.New("ledger: out of capacity")

	// ErrOutOfSpace indicates that no gap is large enough for the requested length.
	ErrOutOfSpace = errors.New("ledger: no free space large enough")

	// ErrCorrupt indicates that Verify found a broken invariant.
	ErrCorrupt = errors.New("ledger: corrupt state")
)
