package vmmap

import (
	"bytes"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/pageledger/addr"
	"github.com/joshuapare/pageledger/ledger"
)

var window = addr.NewLine(0x1000, 0x10000)

func TestNew_Validation(t *testing.T) {
	_, err := New[string](addr.NewLine(0x1001, 0x10000), nil)
	require.ErrorIs(t, err, ErrUnaligned)

	_, err = New[string](addr.NewLine(0x1000, 0x10800), nil)
	require.ErrorIs(t, err, ErrUnaligned)

	huge := addr.NewLine(0, addr.Address(addr.Pages(MaxBitmapPages+1)))
	_, err = New[string](huge, &Options{PageBitmap: true})
	require.ErrorIs(t, err, ErrWindowTooLarge)

	// Without a bitmap any window size is fine.
	m, err := New[string](huge, &Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultCapacity, m.Stats().Capacity)

	m, err = New[string](window, nil)
	require.NoError(t, err)
	assert.Equal(t, window, m.Limits())
}

func TestReserve_FrontAndBack(t *testing.T) {
	m, err := New[string](window, nil)
	require.NoError(t, err)

	low, err := m.Reserve(2, true, "heap")
	require.NoError(t, err)
	assert.Equal(t, addr.NewLine(0x1000, 0x3000), low)

	high, err := m.Reserve(2, false, "stack")
	require.NoError(t, err)
	assert.Equal(t, addr.NewLine(0xe000, 0x10000), high)

	next, err := m.Reserve(2, false, "stack")
	require.NoError(t, err)
	assert.Equal(t, addr.NewLine(0xc000, 0xe000), next)

	// The second stack reservation merged into the first.
	assert.Equal(t, []ledger.Region[string]{
		ledger.Tagged(addr.NewLine(0x1000, 0x3000), "heap"),
		ledger.Tagged(addr.NewLine(0xc000, 0x10000), "stack"),
	}, m.Regions())
}

func TestReserveUntagged(t *testing.T) {
	m, err := New[string](window, nil)
	require.NoError(t, err)

	a, err := m.ReserveUntagged(1, true)
	require.NoError(t, err)
	b, err := m.ReserveUntagged(1, true)
	require.NoError(t, err)
	assert.Equal(t, a.End, b.Start)

	assert.Equal(t, []ledger.Region[string]{
		ledger.Untagged[string](addr.NewLine(0x1000, 0x3000)),
	}, m.Regions())
}

func TestReserve_OutOfSpace(t *testing.T) {
	m, err := New[string](window, nil)
	require.NoError(t, err)

	_, err = m.Reserve(16, true, "big")
	require.ErrorIs(t, err, ledger.ErrOutOfSpace)

	_, err = m.Reserve(15, true, "all")
	require.NoError(t, err)

	_, err = m.Reserve(1, false, "more")
	require.ErrorIs(t, err, ledger.ErrOutOfSpace)

	// A page count whose byte length overflows never wraps to a small request.
	m, err = New[string](window, nil)
	require.NoError(t, err)
	_, err = m.FindFree(1<<52+1, true)
	require.ErrorIs(t, err, ledger.ErrOutOfSpace)
	_, err = m.Reserve(1<<52+1, false, "wrap")
	require.ErrorIs(t, err, ledger.ErrOutOfSpace)
}

func TestReserve_OutOfCapacity(t *testing.T) {
	m, err := New[int](window, &Options{Capacity: 2})
	require.NoError(t, err)

	_, err = m.Reserve(1, true, 1)
	require.NoError(t, err)
	_, err = m.Reserve(1, true, 2)
	require.NoError(t, err)

	_, err = m.Reserve(1, true, 3)
	require.ErrorIs(t, err, ledger.ErrOutOfCapacity)
	assert.Len(t, m.Regions(), 2)
}

func TestMapFixed(t *testing.T) {
	m, err := New[string](window, nil)
	require.NoError(t, err)

	require.NoError(t, m.MapFixed(addr.NewLine(0x4000, 0x6000), "text"))
	require.ErrorIs(t, m.MapFixed(addr.NewLine(0x5000, 0x7000), "data"), ledger.ErrOverlap)
	err = m.MapFixed(addr.NewLine(0x7000, 0x7800), "data")
	require.ErrorIs(t, err, ErrUnaligned)
	assert.Contains(t, err.Error(), "pages cover [0x7000, 0x8000)")
	require.ErrorIs(t, m.MapFixed(addr.NewLine(0xf000, 0x11000), "data"), ledger.ErrInvalidRegion)
	require.NoError(t, m.MapUntagged(addr.NewLine(0x8000, 0x9000)))
	require.NoError(t, m.MapUntagged(addr.NewLine(0x9000, 0xa000)))
	assert.Len(t, m.Regions(), 2, "adjacent untagged regions merge")

	r, ok := m.Lookup(0x5fff)
	require.True(t, ok)
	assert.Equal(t, "text", r.Value)

	r, ok = m.Lookup(0x8000)
	require.True(t, ok)
	assert.False(t, r.Valid)
	assert.Equal(t, addr.NewLine(0x8000, 0xa000), r.Limits)
}

func TestFindFree_DoesNotRecord(t *testing.T) {
	m, err := New[string](window, nil)
	require.NoError(t, err)

	where, err := m.FindFree(3, true)
	require.NoError(t, err)
	assert.Equal(t, addr.NewLine(0x1000, 0x4000), where)
	assert.Empty(t, m.Regions())
}

func TestMapped(t *testing.T) {
	for _, bitmap := range []bool{false, true} {
		name := "lookup"
		if bitmap {
			name = "bitmap"
		}
		t.Run(name, func(t *testing.T) {
			m, err := New[string](window, &Options{PageBitmap: bitmap})
			require.NoError(t, err)

			require.NoError(t, m.MapFixed(addr.NewLine(0x3000, 0x5000), "a"))
			require.NoError(t, m.MapFixed(addr.NewLine(0x5000, 0x6000), "a"))
			_, err = m.Reserve(1, false, "b")
			require.NoError(t, err)

			tests := []struct {
				at   addr.Address
				want bool
			}{
				{0x0, false},
				{0x1000, false},
				{0x2fff, false},
				{0x3000, true},
				{0x5800, true},
				{0x6000, false},
				{0xf000, true},
				{0xffff, true},
				{0x10000, false},
			}
			for _, tt := range tests {
				assert.Equal(t, tt.want, m.Mapped(tt.at), "Mapped(%s)", tt.at)
			}
		})
	}
}

func TestMapped_BitmapMatchesRegions(t *testing.T) {
	m, err := New[int](window, &Options{PageBitmap: true})
	require.NoError(t, err)

	for i := range 5 {
		_, err := m.Reserve(uint64(i%2+1), i%2 == 0, i)
		require.NoError(t, err)
	}

	var pages uint64
	for _, r := range m.Regions() {
		pages += r.Limits.Len().Pages()
	}
	assert.Equal(t, uint(pages), m.pages.Count())
}

func TestStats(t *testing.T) {
	m, err := New[string](window, &Options{Capacity: 8})
	require.NoError(t, err)

	s := m.Stats()
	assert.Equal(t, Stats{Capacity: 8, FreePages: 15, LargestGap: addr.Pages(15)}, s)

	require.NoError(t, m.MapFixed(addr.NewLine(0x3000, 0x5000), "a"))
	require.NoError(t, m.MapFixed(addr.NewLine(0xa000, 0xb000), "b"))

	s = m.Stats()
	assert.Equal(t, 2, s.Regions)
	assert.Equal(t, uint64(3), s.MappedPages)
	assert.Equal(t, uint64(12), s.FreePages)
	assert.Equal(t, addr.Pages(5), s.LargestGap)
}

func TestReserve_Concurrent(t *testing.T) {
	const workers = 64
	limits := addr.NewLine(0x1000, 0x1000+addr.Address(addr.Pages(2*workers)))

	m, err := New[int](limits, &Options{Capacity: workers, PageBitmap: true})
	require.NoError(t, err)

	var g errgroup.Group
	for i := range workers {
		g.Go(func() error {
			_, err := m.Reserve(1, i%2 == 0, i)
			return err
		})
	}
	require.NoError(t, g.Wait())

	regions := m.Regions()
	require.Len(t, regions, workers, "distinct tags never merge")
	require.True(t, sort.SliceIsSorted(regions, func(i, j int) bool {
		return regions[i].Limits.Start < regions[j].Limits.Start
	}))
	for i := 1; i < len(regions); i++ {
		assert.False(t, regions[i-1].Limits.Overlaps(regions[i].Limits))
	}
	assert.Equal(t, uint64(workers), m.Stats().MappedPages)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m, err := New[string](window, &Options{Logger: log})
	require.NoError(t, err)

	require.NoError(t, m.MapFixed(addr.NewLine(0x2000, 0x3000), "rw"))
	assert.Contains(t, buf.String(), `"msg":"insert"`)
	assert.Contains(t, buf.String(), `"range":"[0x2000, 0x3000)"`)

	buf.Reset()
	require.Error(t, m.MapFixed(addr.NewLine(0x2000, 0x3000), "rw"))
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"msg":"insert rejected"`)
}
