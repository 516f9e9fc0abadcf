package prime

import (
	"go-prime/collection"
	"go-prime/metrics"
	"go-prime/thread_pool"

	"go.uber.org/multierr"
)

// rangeTask finds the primes of one range. Ranges no wider than threshold
// are scanned directly; wider ones fork their left half, compute the right
// half in place and then join the left.
type rangeTask struct {
	r            Range
	threshold    int
	sink         collection.Sink
	metricHandle metrics.MetricHandle
}

func (t rangeTask) withRange(r Range) rangeTask {
	t.r = r
	return t
}

func (t rangeTask) compute(w thread_pool.Worker) error {
	if t.r.Len() <= t.threshold {
		t.metricHandle.TaskCount(1, metrics.TaskKindLeaf)
		ScanRange(t.r, t.sink)
		return nil
	}

	t.metricHandle.TaskCount(1, metrics.TaskKindSplit)
	left, right := t.r.Split()
	f := w.Fork(t.withRange(left).compute)
	rightErr := t.withRange(right).compute(w)
	// The left half is joined even when the right failed so no task
	// outlives its parent.
	return multierr.Combine(rightErr, w.Join(f))
}
