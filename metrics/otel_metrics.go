package metrics

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	processorParallelAttrSet   = metric.WithAttributeSet(attribute.NewSet(attribute.String("processor", ProcessorParallel)))
	processorSequentialAttrSet = metric.WithAttributeSet(attribute.NewSet(attribute.String("processor", ProcessorSequential)))
	taskKindLeafAttrSet        = metric.WithAttributeSet(attribute.NewSet(attribute.String("task_kind", TaskKindLeaf)))
	taskKindSplitAttrSet       = metric.WithAttributeSet(attribute.NewSet(attribute.String("task_kind", TaskKindSplit)))
)

type otelMetrics struct {
	processCountProcessorParallelAtomic       *atomic.Int64
	processCountProcessorSequentialAtomic     *atomic.Int64
	primesFoundCountProcessorParallelAtomic   *atomic.Int64
	primesFoundCountProcessorSequentialAtomic *atomic.Int64
	taskCountTaskKindLeafAtomic               *atomic.Int64
	taskCountTaskKindSplitAtomic              *atomic.Int64
	poolStealCountAtomic                      *atomic.Int64
	processLatency                            metric.Int64Histogram
}

func (o *otelMetrics) ProcessCount(inc int64, processor string) {
	switch processor {
	case ProcessorParallel:
		o.processCountProcessorParallelAtomic.Add(inc)
	case ProcessorSequential:
		o.processCountProcessorSequentialAtomic.Add(inc)
	}
}

func (o *otelMetrics) ProcessLatency(ctx context.Context, latency time.Duration, processor string) {
	var record metric.RecordOption
	switch processor {
	case ProcessorParallel:
		record = processorParallelAttrSet
	case ProcessorSequential:
		record = processorSequentialAttrSet
	default:
		return
	}
	o.processLatency.Record(ctx, latency.Microseconds(), record)
}

func (o *otelMetrics) PrimesFoundCount(inc int64, processor string) {
	switch processor {
	case ProcessorParallel:
		o.primesFoundCountProcessorParallelAtomic.Add(inc)
	case ProcessorSequential:
		o.primesFoundCountProcessorSequentialAtomic.Add(inc)
	}
}

func (o *otelMetrics) TaskCount(inc int64, taskKind string) {
	switch taskKind {
	case TaskKindLeaf:
		o.taskCountTaskKindLeafAtomic.Add(inc)
	case TaskKindSplit:
		o.taskCountTaskKindSplitAtomic.Add(inc)
	}
}

func (o *otelMetrics) PoolStealCount(inc int64) {
	o.poolStealCountAtomic.Add(inc)
}

// NewOTelMetrics registers the prime processing instruments on the global
// meter provider.
func NewOTelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("go-prime")

	var processCountProcessorParallelAtomic,
		processCountProcessorSequentialAtomic atomic.Int64

	var primesFoundCountProcessorParallelAtomic,
		primesFoundCountProcessorSequentialAtomic atomic.Int64

	var taskCountTaskKindLeafAtomic,
		taskCountTaskKindSplitAtomic atomic.Int64

	var poolStealCountAtomic atomic.Int64

	_, err0 := meter.Int64ObservableCounter("primes/process_count",
		metric.WithDescription("The cumulative number of completed process calls per processor."),
		metric.WithUnit(""),
		metric.WithInt64Callback(func(_ context.Context, obsrv metric.Int64Observer) error {
			conditionallyObserve(obsrv, &processCountProcessorParallelAtomic, processorParallelAttrSet)
			conditionallyObserve(obsrv, &processCountProcessorSequentialAtomic, processorSequentialAttrSet)
			return nil
		}))

	processLatency, err1 := meter.Int64Histogram("primes/process_latency",
		metric.WithDescription("The distribution of process call latencies per processor."),
		metric.WithUnit("us"),
		metric.WithExplicitBucketBoundaries(100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000, 5000000, 10000000, 60000000))

	_, err2 := meter.Int64ObservableCounter("primes/primes_found_count",
		metric.WithDescription("The cumulative number of primes returned per processor."),
		metric.WithUnit(""),
		metric.WithInt64Callback(func(_ context.Context, obsrv metric.Int64Observer) error {
			conditionallyObserve(obsrv, &primesFoundCountProcessorParallelAtomic, processorParallelAttrSet)
			conditionallyObserve(obsrv, &primesFoundCountProcessorSequentialAtomic, processorSequentialAttrSet)
			return nil
		}))

	_, err3 := meter.Int64ObservableCounter("primes/task_count",
		metric.WithDescription("The cumulative number of range tasks, split or computed directly."),
		metric.WithUnit(""),
		metric.WithInt64Callback(func(_ context.Context, obsrv metric.Int64Observer) error {
			conditionallyObserve(obsrv, &taskCountTaskKindLeafAtomic, taskKindLeafAttrSet)
			conditionallyObserve(obsrv, &taskCountTaskKindSplitAtomic, taskKindSplitAttrSet)
			return nil
		}))

	_, err4 := meter.Int64ObservableCounter("pool/steal_count",
		metric.WithDescription("The cumulative number of tasks stolen from another worker's queue."),
		metric.WithUnit(""),
		metric.WithInt64Callback(func(_ context.Context, obsrv metric.Int64Observer) error {
			conditionallyObserve(obsrv, &poolStealCountAtomic)
			return nil
		}))

	errs := []error{err0, err1, err2, err3, err4}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &otelMetrics{
		processCountProcessorParallelAtomic:       &processCountProcessorParallelAtomic,
		processCountProcessorSequentialAtomic:     &processCountProcessorSequentialAtomic,
		primesFoundCountProcessorParallelAtomic:   &primesFoundCountProcessorParallelAtomic,
		primesFoundCountProcessorSequentialAtomic: &primesFoundCountProcessorSequentialAtomic,
		taskCountTaskKindLeafAtomic:               &taskCountTaskKindLeafAtomic,
		taskCountTaskKindSplitAtomic:              &taskCountTaskKindSplitAtomic,
		poolStealCountAtomic:                      &poolStealCountAtomic,
		processLatency:                            processLatency,
	}, nil
}

func conditionallyObserve(obsrv metric.Int64Observer, counter *atomic.Int64, obsrvOptions ...metric.ObserveOption) {
	if val := counter.Load(); val > 0 {
		obsrv.Observe(val, obsrvOptions...)
	}
}
