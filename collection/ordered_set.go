package collection

import "github.com/willf/bitset"

// OrderedSet remembers members in insertion order. Membership of
// non-negative values is tracked in a bitset, negatives fall back to a map.
//
// OrderedSet is not safe for concurrent use.
type OrderedSet struct {
	values   []int
	seen     *bitset.BitSet
	negative map[int]struct{}
}

// NewOrderedSet returns an empty set. sizeHint is the expected largest
// member and only pre-sizes the bitset.
func NewOrderedSet(sizeHint int) *OrderedSet {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &OrderedSet{
		seen: bitset.New(uint(sizeHint)),
	}
}

func (s *OrderedSet) Add(v int) bool {
	if s.Contains(v) {
		return false
	}
	if v >= 0 {
		s.seen.Set(uint(v))
	} else {
		if s.negative == nil {
			s.negative = make(map[int]struct{})
		}
		s.negative[v] = struct{}{}
	}
	s.values = append(s.values, v)
	return true
}

func (s *OrderedSet) Contains(v int) bool {
	if v >= 0 {
		return s.seen.Test(uint(v))
	}
	_, ok := s.negative[v]
	return ok
}

func (s *OrderedSet) Len() int {
	return len(s.values)
}

// Values returns the members in insertion order.
func (s *OrderedSet) Values() []int {
	out := make([]int, len(s.values))
	copy(out, s.values)
	return out
}

func (s *OrderedSet) Sorted() []int {
	return sortedCopy(s.values)
}
