package vmmap

import (
	"errors"
	"log/slog"

	"github.com/joshuapare/pageledger/ledger"
)

const (
	// DefaultCapacity is the region capacity used when Options.Capacity is zero.
	DefaultCapacity = 64

	// MaxBitmapPages bounds the window size for which a page bitmap is kept
	// (64GB of 4KB pages, a 2MB bitmap).
	MaxBitmapPages = 1 << 24
)

var (
	// ErrUnaligned indicates an address or length that is not page aligned.
	ErrUnaligned = errors.New("vmmap: not page aligned")

	// ErrWindowTooLarge indicates a page bitmap was requested for a window
	// larger than MaxBitmapPages.
	ErrWindowTooLarge = errors.New("vmmap: window too large for page bitmap")
)

// Options configures a Map.
type Options struct {
	// Capacity is the maximum number of distinct regions.
	// Default: DefaultCapacity.
	Capacity int

	// Gap selects the ledger's free-space acceptance test.
	// Default: ledger.GapExact.
	Gap ledger.GapCheck

	// PageBitmap keeps one bit per page of the window so Mapped is O(1).
	// Rejected for windows larger than MaxBitmapPages.
	PageBitmap bool

	// Logger receives mutation records at Debug and rejections at Warn.
	// If nil, logging is discarded.
	Logger *slog.Logger
}

// DefaultOptions is used when New is passed nil options.
var DefaultOptions = Options{Capacity: DefaultCapacity}
