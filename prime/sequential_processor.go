package prime

import (
	"context"
	"time"

	"go-prime/collection"
	"go-prime/logger"
	"go-prime/metrics"
)

// SequentialProcessor scans the whole range on the calling goroutine. Its
// results keep discovery order, which is numeric order.
type SequentialProcessor struct {
	metricHandle metrics.MetricHandle
}

func NewSequentialProcessor(opts ...Option) *SequentialProcessor {
	o := newOptions(opts)
	return &SequentialProcessor{metricHandle: o.metricHandle}
}

// Process returns an *collection.OrderedSet holding the primes in
// [0, limit).
func (p *SequentialProcessor) Process(limit int) (collection.Set, error) {
	r := Range{Start: 0, End: limit}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	results := collection.NewOrderedSet(limit)
	found := ScanRange(r, results)

	p.metricHandle.ProcessCount(1, metrics.ProcessorSequential)
	p.metricHandle.PrimesFoundCount(int64(found), metrics.ProcessorSequential)
	p.metricHandle.ProcessLatency(context.Background(), time.Since(start), metrics.ProcessorSequential)
	logger.Debugf("SequentialProcessor: found %d primes below %d", found, limit)
	return results, nil
}
