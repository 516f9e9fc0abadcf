// primes finds the prime numbers below a limit, sequentially or with a
// work-stealing fork/join pool.
package main

import "go-prime/cmd"

func main() {
	cmd.Execute()
}
