package vmmap

import "github.com/joshuapare/pageledger/addr"

// Stats summarizes the occupancy of a Map.
type Stats struct {
	Regions     int         // Recorded regions
	Capacity    int         // Maximum regions
	MappedPages uint64      // Pages inside recorded regions
	FreePages   uint64      // Pages of the window outside any region
	LargestGap  addr.Offset // Largest free run, including the window edges
}

// Stats returns a snapshot of the map's occupancy.
func (m *Map[V]) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	limits := m.ledger.Limits()
	regions := m.ledger.Regions()

	s := Stats{
		Regions:  len(regions),
		Capacity: m.ledger.Cap(),
	}

	cursor := limits.Start
	for _, r := range regions {
		s.MappedPages += addr.PageCount(r.Limits.Len())
		if gap := r.Limits.Start.Diff(cursor); gap > s.LargestGap {
			s.LargestGap = gap
		}
		cursor = r.Limits.End
	}
	if limits.End > cursor {
		if gap := limits.End.Diff(cursor); gap > s.LargestGap {
			s.LargestGap = gap
		}
	}

	s.FreePages = addr.PageCount(limits.Len()) - s.MappedPages
	return s
}
