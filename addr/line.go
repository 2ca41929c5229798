package addr

import "fmt"

// Line is a half-open interval of addresses [Start, End).
type Line struct {
	Start Address
	End   Address
}

// NewLine returns the interval [start, end).
func NewLine(start, end Address) Line {
	return Line{Start: start, End: end}
}

// IsEmpty reports whether the interval covers no address (Start >= End).
func (l Line) IsEmpty() bool {
	return l.Start >= l.End
}

// Len returns the length of the interval, or zero if it is empty.
func (l Line) Len() Offset {
	if l.IsEmpty() {
		return 0
	}
	return l.End.Diff(l.Start)
}

// Intersection returns the overlap of l and o. ok is false when the overlap
// is empty, including when the intervals merely touch.
func (l Line) Intersection(o Line) (Line, bool) {
	r := l
	if r.Start < o.Start {
		r.Start = o.Start
	}
	if r.End > o.End {
		r.End = o.End
	}
	if r.IsEmpty() {
		return Line{}, false
	}
	return r, true
}

// Overlaps reports whether l and o share at least one address.
func (l Line) Overlaps(o Line) bool {
	_, ok := l.Intersection(o)
	return ok
}

// ContainsLine reports whether o lies entirely within l.
func (l Line) ContainsLine(o Line) bool {
	return l.Start <= o.Start && o.End <= l.End
}

// ContainsAddr reports whether a lies within l.
func (l Line) ContainsAddr(a Address) bool {
	return l.Start <= a && a < l.End
}

func (l Line) String() string {
	return fmt.Sprintf("[%#x, %#x)", uint64(l.Start), uint64(l.End))
}
