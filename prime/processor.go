// Package prime finds the primes below a limit, either with a single scan or
// by recursively splitting the range over a fork/join worker pool.
package prime

import (
	"go-prime/cfg"
	"go-prime/collection"
	"go-prime/metrics"
	"go-prime/thread_pool"
)

// Processor returns the primes in [0, limit).
type Processor interface {
	Process(limit int) (collection.Set, error)
}

type options struct {
	parallelism  int
	scheduler    cfg.SchedulerKind
	pool         thread_pool.Pool
	metricHandle metrics.MetricHandle
}

// Option configures a processor. The sequential processor only honours
// WithMetrics.
type Option func(*options)

// WithParallelism sets the worker count of the pool a ParallelProcessor
// creates. n <= 0 means runtime.NumCPU().
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

func WithScheduler(kind cfg.SchedulerKind) Option {
	return func(o *options) {
		o.scheduler = kind
	}
}

// WithPool runs tasks on an externally owned, already started pool. The
// processor never stops it.
func WithPool(pool thread_pool.Pool) Option {
	return func(o *options) {
		o.pool = pool
	}
}

func WithMetrics(h metrics.MetricHandle) Option {
	return func(o *options) {
		if h != nil {
			o.metricHandle = h
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		scheduler:    cfg.WorkStealingScheduler,
		metricHandle: metrics.NewNoopMetrics(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
