package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pageledger/addr"
)

func TestNew_Defaults(t *testing.T) {
	l := New[perm](testLimits, 4, nil)

	assert.Equal(t, testLimits, l.Limits())
	assert.Equal(t, 4, l.Cap())
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, GapExact, l.Gap())
	assert.Empty(t, l.Regions())
	require.NoError(t, l.Verify())

	span := New[perm](testLimits, 4, &Options{Gap: GapSpan})
	assert.Equal(t, GapSpan, span.Gap())
}

func TestRegions_ReturnsCopy(t *testing.T) {
	l := New[perm](testLimits, 4, nil)
	require.NoError(t, l.Insert(Tagged(line(0x4000, 0x5000), permR)))

	regions := l.Regions()
	regions[0].Limits.End = 0x9000
	regions[0].Value = permRW

	assert.Equal(t, Tagged(line(0x4000, 0x5000), permR), l.Regions()[0])
}

func TestLookup(t *testing.T) {
	l := New[perm](testLimits, 8, nil)
	require.NoError(t, l.Insert(Tagged(line(0x2000, 0x4000), permR)))
	require.NoError(t, l.Insert(Tagged(line(0x8000, 0x9000), permRX)))
	require.NoError(t, l.Insert(Untagged[perm](line(0xa000, 0xc000))))

	tests := []struct {
		name  string
		at    addr.Address
		found bool
		want  addr.Line
	}{
		{"before first", 0x1000, false, addr.Line{}},
		{"first byte", 0x2000, true, line(0x2000, 0x4000)},
		{"last byte", 0x3fff, true, line(0x2000, 0x4000)},
		{"end is exclusive", 0x4000, false, addr.Line{}},
		{"middle region", 0x8800, true, line(0x8000, 0x9000)},
		{"untagged region", 0xb000, true, line(0xa000, 0xc000)},
		{"after last", 0xf000, false, addr.Line{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := l.Lookup(tt.at)
			require.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, r.Limits)
		})
	}
}

func TestClone_Independent(t *testing.T) {
	l := New[perm](testLimits, 4, &Options{Gap: GapSpan})
	require.NoError(t, l.Insert(Tagged(line(0x4000, 0x5000), permR)))

	c := l.Clone()
	require.NoError(t, c.Insert(Tagged(line(0x5000, 0x6000), permR)))
	require.NoError(t, c.Insert(Tagged(line(0x9000, 0xa000), permRW)))

	assert.Equal(t, []Region[perm]{Tagged(line(0x4000, 0x5000), permR)}, l.Regions())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, l.Cap(), c.Cap())
	assert.Equal(t, GapSpan, c.Gap())
	require.NoError(t, l.Verify())
	require.NoError(t, c.Verify())
}

func TestVerify_DetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(l *Ledger[perm])
	}{
		{"out of order", func(l *Ledger[perm]) {
			l.regions[0], l.regions[1] = l.regions[1], l.regions[0]
		}},
		{"overlap", func(l *Ledger[perm]) {
			l.regions[0].Limits.End = 0x8800
		}},
		{"empty region", func(l *Ledger[perm]) {
			l.regions[1].Limits.Start = l.regions[1].Limits.End
		}},
		{"outside limits", func(l *Ledger[perm]) {
			l.regions[0].Limits.Start = 0
		}},
		{"stale unused slot", func(l *Ledger[perm]) {
			l.regions[3] = Tagged(line(0xe000, 0xf000), permR)
		}},
		{"count beyond capacity", func(l *Ledger[perm]) {
			l.n = len(l.regions) + 1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New[perm](testLimits, 4, nil)
			require.NoError(t, l.Insert(Tagged(line(0x2000, 0x3000), permR)))
			require.NoError(t, l.Insert(Tagged(line(0x8000, 0x9000), permRW)))
			require.NoError(t, l.Verify())

			tt.corrupt(l)
			require.ErrorIs(t, l.Verify(), ErrCorrupt)
		})
	}
}

func TestRegion_SameTag(t *testing.T) {
	a := line(0x1000, 0x2000)

	assert.True(t, Untagged[perm](a).SameTag(Untagged[perm](a)))
	assert.True(t, Tagged(a, permR).SameTag(Tagged(line(0x5000, 0x6000), permR)))
	assert.False(t, Tagged(a, permR).SameTag(Tagged(a, permRW)))
	assert.False(t, Untagged[perm](a).SameTag(Tagged(a, perm(""))))
}

func TestRegion_String(t *testing.T) {
	assert.Equal(t, "[0x1000, 0x2000) rw", Tagged(line(0x1000, 0x2000), permRW).String())
	assert.Equal(t, "[0x1000, 0x2000)", Untagged[perm](line(0x1000, 0x2000)).String())
	assert.Equal(t, "span", GapSpan.String())
	assert.Equal(t, "GapCheck(9)", GapCheck(9).String())
}
