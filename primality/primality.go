// Package primality holds the primality predicate shared by every processor.
package primality

// IsPrime reports whether n is a prime number.
//
// It is a pure function and is safe to call from any number of goroutines.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n == 2 || n == 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	// i <= n/i is i*i <= n without the overflow.
	for i := 5; i <= n/i; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}
