// Package collection provides the integer sets that processors write their
// results into.
package collection

import "slices"

// Sink is the write side of a result collection.
type Sink interface {
	// Add inserts v and reports whether it was not already present.
	Add(v int) bool
}

// Set is a collection of distinct integers.
type Set interface {
	Sink

	// Contains reports whether v is a member of the set.
	Contains(v int) bool

	// Len returns the number of members.
	Len() int

	// Values returns the members in an implementation defined order.
	Values() []int

	// Sorted returns the members in increasing numeric order.
	Sorted() []int
}

// Equal reports whether a and b hold exactly the same members.
func Equal(a, b Set) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, v := range a.Values() {
		if !b.Contains(v) {
			return false
		}
	}
	return true
}

func sortedCopy(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	slices.Sort(out)
	return out
}
