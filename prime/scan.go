package prime

import (
	"go-prime/collection"
	"go-prime/primality"
)

// ScanRange adds every prime in r to sink in increasing order and returns
// how many it found.
func ScanRange(r Range, sink collection.Sink) int {
	found := 0
	for n := r.Start; n < r.End; n++ {
		if primality.IsPrime(n) {
			sink.Add(n)
			found++
		}
	}
	return found
}
