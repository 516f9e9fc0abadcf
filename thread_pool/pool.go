package thread_pool

import (
	"errors"
	"sync/atomic"
	"time"

	"go-prime/metrics"
)

var (
	ErrPoolNotStarted = errors.New("pool not started")
	ErrPoolStopped    = errors.New("pool stopped")
	ErrPoolSaturated  = errors.New("pool submission queue is full")
	ErrTaskPanicked   = errors.New("task panicked")
)

const (
	defaultSubmissionQueueSize = 1024
	defaultParkTime            = 50 * time.Millisecond
)

// Pool runs fork/join computations.
type Pool interface {
	Start()

	// Stop waits for the work in flight to finish. Later calls to Invoke fail
	// with ErrPoolStopped.
	Stop()

	// Invoke runs fn on the pool and blocks until it and everything it
	// joined has completed.
	Invoke(fn TaskFunc) error

	Parallelism() int

	Stats() Stats
}

// Stats is a snapshot of a pool's counters.
type Stats struct {
	Submitted int64
	Forked    int64
	Stolen    int64
	// Inline counts forked tasks executed by their joiner.
	Inline   int64
	Executed int64
	// Faults counts recovered panics.
	Faults int64
}

type stats struct {
	submitted atomic.Int64
	forked    atomic.Int64
	stolen    atomic.Int64
	inline    atomic.Int64
	executed  atomic.Int64
	faults    atomic.Int64
}

func (s *stats) snapshot() Stats {
	return Stats{
		Submitted: s.submitted.Load(),
		Forked:    s.forked.Load(),
		Stolen:    s.stolen.Load(),
		Inline:    s.inline.Load(),
		Executed:  s.executed.Load(),
		Faults:    s.faults.Load(),
	}
}

// record runs a claimed future on w. The counters are updated before the
// future completes so a joiner observes them.
func (s *stats) record(f *Future, w Worker) {
	panicked, err := safeRun(f.fn, w)
	s.executed.Add(1)
	if panicked {
		s.faults.Add(1)
	}
	f.complete(err)
}

type options struct {
	submissionQueueSize int
	parkTime            time.Duration
	metricHandle        metrics.MetricHandle
}

func defaultOptions() options {
	return options{
		submissionQueueSize: defaultSubmissionQueueSize,
		parkTime:            defaultParkTime,
		metricHandle:        metrics.NewNoopMetrics(),
	}
}

// Option configures a pool.
type Option func(*options)

// WithSubmissionQueueSize bounds the number of root tasks waiting for a
// worker. Ignored by SpawnPool.
func WithSubmissionQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.submissionQueueSize = n
		}
	}
}

// WithParkTime sets how long an idle worker sleeps before looking for work
// again without being woken. Ignored by SpawnPool.
func WithParkTime(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.parkTime = d
		}
	}
}

func WithMetrics(h metrics.MetricHandle) Option {
	return func(o *options) {
		if h != nil {
			o.metricHandle = h
		}
	}
}
