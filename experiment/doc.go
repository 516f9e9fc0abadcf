// Package experiment holds benchmarks comparing processors, schedulers and
// loggers. It has no non-test code.
//
// Command: go test -bench . -test.benchmem ./experiment/
package experiment
