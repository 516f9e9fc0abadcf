package thread_pool

import (
	"fmt"
	"sync"
	"time"

	"go-prime/logger"
)

// ForkJoinPool is a fixed set of workers with one task deque each. A worker
// runs its own newest task first, then root submissions, then steals the
// oldest task of another worker.
type ForkJoinPool struct {
	workers []*worker
	opts    options

	// Root tasks waiting for a worker.
	submitCh chan *Future

	// Wakes parked workers when new work is published.
	wake chan struct{}

	// Closed by Stop to tell the workers to drain and exit.
	closeCh chan struct{}

	// Guards started and stopped against concurrent submissions.
	mu      sync.RWMutex
	started bool
	stopped bool

	wg    sync.WaitGroup
	stats stats
}

// NewForkJoinPool creates a pool of parallelism workers. The workers start
// with Start.
func NewForkJoinPool(parallelism int, opts ...Option) (*ForkJoinPool, error) {
	if parallelism <= 0 {
		return nil, fmt.Errorf("ForkJoinPool: parallelism must be positive, got %d", parallelism)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &ForkJoinPool{
		workers:  make([]*worker, parallelism),
		opts:     o,
		submitCh: make(chan *Future, o.submissionQueueSize),
		wake:     make(chan struct{}, parallelism),
		closeCh:  make(chan struct{}),
	}
	for i := range p.workers {
		p.workers[i] = &worker{id: i, pool: p}
	}
	logger.Debugf("ForkJoinPool: created with %d workers", parallelism)
	return p, nil
}

func (p *ForkJoinPool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.stopped {
		return
	}
	p.started = true
	for _, w := range p.workers {
		p.wg.Add(1)
		go w.loop()
	}
	logger.Debugf("ForkJoinPool: started %d workers", len(p.workers))
}

func (p *ForkJoinPool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	wasStarted := p.started
	p.mu.Unlock()

	logger.Debugf("ForkJoinPool: stopping")
	close(p.closeCh)
	if wasStarted {
		p.wg.Wait()
	}

	// Whatever is still queued will never be picked up.
	for {
		select {
		case f := <-p.submitCh:
			if f.claim() {
				f.complete(ErrPoolStopped)
			}
		default:
			logger.Debugf("ForkJoinPool: stopped, %+v", p.stats.snapshot())
			return
		}
	}
}

func (p *ForkJoinPool) Invoke(fn TaskFunc) error {
	f := newFuture(fn)

	p.mu.RLock()
	switch {
	case p.stopped:
		p.mu.RUnlock()
		return ErrPoolStopped
	case !p.started:
		p.mu.RUnlock()
		return ErrPoolNotStarted
	}
	select {
	case p.submitCh <- f:
	default:
		p.mu.RUnlock()
		return ErrPoolSaturated
	}
	p.mu.RUnlock()

	p.stats.submitted.Add(1)
	p.signal()
	<-f.done
	return f.err
}

func (p *ForkJoinPool) Parallelism() int {
	return len(p.workers)
}

func (p *ForkJoinPool) Stats() Stats {
	return p.stats.snapshot()
}

func (p *ForkJoinPool) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

type worker struct {
	id    int
	pool  *ForkJoinPool
	tasks deque
}

func (w *worker) ID() int {
	return w.id
}

func (w *worker) Fork(fn TaskFunc) *Future {
	f := newFuture(fn)
	w.tasks.pushBottom(f)
	w.pool.stats.forked.Add(1)
	w.pool.signal()
	return f
}

func (w *worker) Join(f *Future) error {
	w.tasks.removeBottom(f)
	if f.claim() {
		w.pool.stats.inline.Add(1)
		w.pool.stats.record(f, w)
		return f.err
	}

	// Someone else is running f. Help with pending forks until it is done.
	for {
		select {
		case <-f.done:
			return f.err
		default:
		}
		next, stolen := w.findWork(false)
		if next == nil {
			<-f.done
			return f.err
		}
		w.execute(next, stolen)
	}
}

func (w *worker) loop() {
	defer w.pool.wg.Done()

	park := time.NewTimer(w.pool.opts.parkTime)
	defer park.Stop()

	for {
		if f, stolen := w.findWork(true); f != nil {
			w.execute(f, stolen)
			continue
		}

		park.Reset(w.pool.opts.parkTime)
		select {
		case <-w.pool.closeCh:
			for f, stolen := w.findWork(true); f != nil; f, stolen = w.findWork(true) {
				w.execute(f, stolen)
			}
			return
		case <-w.pool.wake:
		case <-park.C:
		}
	}
}

// findWork returns the next task for w: its own newest fork, then a root
// submission if allowed, then the oldest fork of another worker.
func (w *worker) findWork(submissions bool) (*Future, bool) {
	if f := w.tasks.popBottom(); f != nil {
		return f, false
	}
	if submissions {
		select {
		case f := <-w.pool.submitCh:
			return f, false
		default:
		}
	}
	n := len(w.pool.workers)
	for i := 1; i < n; i++ {
		victim := w.pool.workers[(w.id+i)%n]
		if f := victim.tasks.stealTop(); f != nil {
			return f, true
		}
	}
	return nil, false
}

func (w *worker) execute(f *Future, stolen bool) {
	// Futures claimed by their joiner can still sit in a deque.
	if !f.claim() {
		return
	}
	if stolen {
		w.pool.stats.stolen.Add(1)
		w.pool.opts.metricHandle.PoolStealCount(1)
		logger.Tracef("ForkJoinPool: worker %d stole a task", w.id)
	}
	w.pool.stats.record(f, w)
}
