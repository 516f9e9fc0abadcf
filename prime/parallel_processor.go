package prime

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go-prime/cfg"
	"go-prime/collection"
	"go-prime/logger"
	"go-prime/metrics"
	"go-prime/thread_pool"

	"github.com/google/uuid"
)

// ParallelProcessor splits [0, limit) into range tasks executed on a worker
// pool. A processor can serve any number of Process calls, also
// concurrently.
type ParallelProcessor struct {
	threshold    int
	pool         thread_pool.Pool
	ownsPool     bool
	metricHandle metrics.MetricHandle
	closeOnce    sync.Once
}

// NewParallelProcessor creates a processor whose tasks scan ranges of at most
// threshold candidates directly. Unless WithPool is given it creates and
// starts its own pool, released by Close.
func NewParallelProcessor(threshold int, opts ...Option) (*ParallelProcessor, error) {
	if threshold < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
	}
	o := newOptions(opts)

	p := &ParallelProcessor{
		threshold:    threshold,
		pool:         o.pool,
		metricHandle: o.metricHandle,
	}
	if p.pool != nil {
		return p, nil
	}

	parallelism := o.parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	pool, err := newPool(o.scheduler, parallelism, thread_pool.WithMetrics(o.metricHandle))
	if err != nil {
		return nil, err
	}
	pool.Start()
	p.pool = pool
	p.ownsPool = true
	return p, nil
}

func newPool(kind cfg.SchedulerKind, parallelism int, opts ...thread_pool.Option) (thread_pool.Pool, error) {
	switch kind {
	case cfg.SpawnScheduler:
		return thread_pool.NewSpawnPool(parallelism, opts...)
	case cfg.WorkStealingScheduler, "":
		return thread_pool.NewForkJoinPool(parallelism, opts...)
	default:
		return nil, fmt.Errorf("unknown scheduler %q", kind)
	}
}

func (p *ParallelProcessor) Threshold() int {
	return p.threshold
}

func (p *ParallelProcessor) Parallelism() int {
	return p.pool.Parallelism()
}

// Stats returns the counters of the underlying pool.
func (p *ParallelProcessor) Stats() thread_pool.Stats {
	return p.pool.Stats()
}

// Process returns a *collection.ConcurrentSet holding the primes in
// [0, limit). It returns once every task has finished writing.
//
// On a work-stealing pool, root tasks of concurrent calls wait in the pool's
// submission queue, 1024 entries unless set with
// thread_pool.WithSubmissionQueueSize. A call that finds the queue full does
// not block: it fails with ErrTaskFault wrapping thread_pool.ErrPoolSaturated.
func (p *ParallelProcessor) Process(limit int) (collection.Set, error) {
	r := Range{Start: 0, End: limit}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	start := time.Now()
	logger.Debugf("ParallelProcessor: run %s over [0, %d) with threshold %d", runID, limit, p.threshold)

	results := collection.NewConcurrentSet()
	root := rangeTask{
		r:            r,
		threshold:    p.threshold,
		sink:         results,
		metricHandle: p.metricHandle,
	}
	if err := p.pool.Invoke(root.compute); err != nil {
		logger.Errorf("ParallelProcessor: run %s failed: %v", runID, err)
		return nil, fmt.Errorf("%w: %w", ErrTaskFault, err)
	}

	p.metricHandle.ProcessCount(1, metrics.ProcessorParallel)
	p.metricHandle.PrimesFoundCount(int64(results.Len()), metrics.ProcessorParallel)
	p.metricHandle.ProcessLatency(context.Background(), time.Since(start), metrics.ProcessorParallel)
	logger.Debugf("ParallelProcessor: run %s found %d primes in %v", runID, results.Len(), time.Since(start))
	return results, nil
}

// Close stops the pool if the processor created it.
func (p *ParallelProcessor) Close() error {
	if p.ownsPool {
		p.closeOnce.Do(p.pool.Stop)
	}
	return nil
}
