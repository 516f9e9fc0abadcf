package prime

import "fmt"

// Range is the half-open span [Start, End) of candidates.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) Validate() error {
	if r.Start > r.End {
		return fmt.Errorf("%w: %v", ErrInvalidRange, r)
	}
	return nil
}

// Split partitions r at its midpoint. Both halves are strictly smaller than
// r when r.Len() >= 2.
func (r Range) Split() (left, right Range) {
	mid := r.Start + (r.End-r.Start)/2
	return Range{Start: r.Start, End: mid}, Range{Start: mid, End: r.End}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}
