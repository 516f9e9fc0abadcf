package thread_pool

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go-prime/logger"

	"golang.org/x/sync/semaphore"
)

// SpawnPool gives a forked task its own goroutine while fewer than
// parallelism-1 spawned goroutines are running. Otherwise the task waits
// and is executed by its joiner. Root tasks run on the caller of Invoke.
type SpawnPool struct {
	parallelism int

	// Limits the spawned goroutines.
	sem *semaphore.Weighted

	// Guards isStopped against Invoke registering with wg.
	mu        sync.RWMutex
	isStarted bool
	isStopped bool

	wg          sync.WaitGroup
	stopOnce    sync.Once
	workerCount atomic.Int32
	nextID      atomic.Int64
	stats       stats
	opts        options
}

// NewSpawnPool creates a spawn pool. parallelism must be positive.
func NewSpawnPool(parallelism int, opts ...Option) (*SpawnPool, error) {
	if parallelism <= 0 {
		return nil, fmt.Errorf("SpawnPool: parallelism must be positive, got %d", parallelism)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger.Debugf("SpawnPool: created with parallelism %d", parallelism)
	return &SpawnPool{
		parallelism: parallelism,
		sem:         semaphore.NewWeighted(int64(parallelism - 1)),
		opts:        o,
	}, nil
}

// Start prepares the pool to accept tasks. No goroutines are started until
// a task forks.
func (p *SpawnPool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isStopped {
		p.isStarted = true
	}
}

// Stop rejects new invocations and waits for the running ones to finish.
func (p *SpawnPool) Stop() {
	p.stopOnce.Do(func() {
		logger.Debugf("SpawnPool: stopping")
		p.mu.Lock()
		p.isStopped = true
		p.mu.Unlock()

		p.wg.Wait()
		logger.Debugf("SpawnPool: stopped, %+v", p.stats.snapshot())
	})
}

func (p *SpawnPool) Invoke(fn TaskFunc) error {
	p.mu.RLock()
	switch {
	case p.isStopped:
		p.mu.RUnlock()
		return ErrPoolStopped
	case !p.isStarted:
		p.mu.RUnlock()
		return ErrPoolNotStarted
	}
	p.wg.Add(1)
	p.mu.RUnlock()
	defer p.wg.Done()

	p.stats.submitted.Add(1)
	f := newFuture(fn)
	f.claim()
	p.stats.record(f, p.newWorker())
	return f.err
}

func (p *SpawnPool) Parallelism() int {
	return p.parallelism
}

func (p *SpawnPool) Stats() Stats {
	return p.stats.snapshot()
}

// ActiveWorkers returns the number of spawned goroutines currently running.
func (p *SpawnPool) ActiveWorkers() int32 {
	return p.workerCount.Load()
}

func (p *SpawnPool) newWorker() *spawnWorker {
	return &spawnWorker{id: int(p.nextID.Add(1) - 1), pool: p}
}

type spawnWorker struct {
	id   int
	pool *SpawnPool
}

func (w *spawnWorker) ID() int {
	return w.id
}

func (w *spawnWorker) Fork(fn TaskFunc) *Future {
	p := w.pool
	f := newFuture(fn)
	p.stats.forked.Add(1)
	if !p.sem.TryAcquire(1) {
		return f
	}

	f.claim()
	p.wg.Add(1)
	p.workerCount.Add(1)
	go func() {
		defer func() {
			p.workerCount.Add(-1)
			p.sem.Release(1)
			p.wg.Done()
		}()
		p.stats.record(f, p.newWorker())
	}()
	return f
}

func (w *spawnWorker) Join(f *Future) error {
	if f.claim() {
		w.pool.stats.inline.Add(1)
		w.pool.stats.record(f, w)
		return f.err
	}
	<-f.done
	return f.err
}
