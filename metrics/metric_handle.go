package metrics

import (
	"context"
	"time"
)

// Constants for attribute Processor
const (
	ProcessorParallel   = "parallel"
	ProcessorSequential = "sequential"
)

// Constants for attribute TaskKind
const (
	TaskKindLeaf  = "leaf"
	TaskKindSplit = "split"
)

// MetricHandle records the counters and latencies of prime processing.
// Implementations must be safe for concurrent use.
type MetricHandle interface {
	// ProcessCount - The cumulative number of completed process calls.
	ProcessCount(inc int64, processor string)

	// ProcessLatency - The distribution of process call latencies.
	ProcessLatency(ctx context.Context, duration time.Duration, processor string)

	// PrimesFoundCount - The cumulative number of primes returned to callers.
	PrimesFoundCount(inc int64, processor string)

	// TaskCount - The cumulative number of range tasks, split or computed directly.
	TaskCount(inc int64, taskKind string)

	// PoolStealCount - The cumulative number of tasks taken from another worker's queue.
	PoolStealCount(inc int64)
}
