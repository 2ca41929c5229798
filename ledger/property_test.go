package ledger

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pageledger/addr"
)

// Test_Property_RandomInsertFind drives random FindFree/Insert sequences and
// checks the invariants after every step.
func Test_Property_RandomInsertFind(t *testing.T) {
	limits := addr.NewLine(0x1000, 0x101000) // 256 pages
	tags := []perm{permR, permRW, permRX}

	for _, seed := range []int64{1, 42, 1337} {
		rng := rand.New(rand.NewSource(seed)) // Fixed seed for reproducibility
		l := New[perm](limits, 24, nil)

		for step := range 2000 {
			before := l.Regions()
			tag := tags[rng.Intn(len(tags))]

			switch rng.Intn(2) {
			case 0: // Find then commit
				length := addr.Pages(uint64(1 + rng.Intn(6)))
				where, err := l.FindFree(length, rng.Intn(2) == 0)
				if err != nil {
					require.ErrorIs(t, err, ErrOutOfSpace, "seed %d step %d", seed, step)
					break
				}
				require.Equal(t, length, where.Len())
				require.True(t, limits.ContainsLine(where))

				err = l.Insert(Tagged(where, tag))
				if err != nil {
					require.ErrorIs(t, err, ErrOutOfCapacity, "seed %d step %d: %s", seed, step, where)
					require.Equal(t, before, l.Regions())
				}

			case 1: // Fixed location
				start := limits.Start.Add(addr.Pages(uint64(rng.Intn(260))))
				end := start.Add(addr.Pages(uint64(rng.Intn(4))))
				err := l.Insert(Tagged(addr.NewLine(start, end), tag))
				switch {
				case err == nil:
				case errors.Is(err, ErrInvalidRegion), errors.Is(err, ErrOverlap), errors.Is(err, ErrOutOfCapacity):
					require.Equal(t, before, l.Regions(), "rejected insert mutated ledger")
				default:
					t.Fatalf("seed %d step %d: unexpected error %v", seed, step, err)
				}
			}

			require.NoError(t, l.Verify(), "seed %d step %d", seed, step)
			require.LessOrEqual(t, len(before), l.Len(), "ledger must never shrink")
		}
	}
}

// Test_Property_MergeDoesNotGrow checks that touching equal-tag inserts never
// use another slot.
func Test_Property_MergeDoesNotGrow(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	l := New[perm](testLimits, 1, nil)
	require.NoError(t, l.Insert(Tagged(line(0x8000, 0x9000), permRW)))

	for range 6 {
		r := l.Regions()[0].Limits
		var next addr.Line
		if rng.Intn(2) == 0 && r.Start > testLimits.Start {
			next = line(r.Start.Sub(addr.Pages(1)), r.Start)
		} else if r.End < testLimits.End {
			next = line(r.End, r.End.Add(addr.Pages(1)))
		} else {
			next = line(r.Start.Sub(addr.Pages(1)), r.Start)
		}

		require.NoError(t, l.Insert(Tagged(next, permRW)))
		require.Equal(t, 1, l.Len())
		require.Equal(t, r.Len()+addr.Pages(1), l.Regions()[0].Limits.Len())
	}
}
