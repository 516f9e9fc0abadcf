package thread_pool

import (
	"fmt"
	"runtime/debug"
	"sync/atomic"
)

// TaskFunc is a unit of work executed by a pool. The worker it receives is
// the one running it and is used to fork and join subtasks.
type TaskFunc func(w Worker) error

// Worker is the view of a pool that a running task sees.
type Worker interface {
	ID() int

	// Fork makes fn available for execution and returns immediately.
	Fork(fn TaskFunc) *Future

	// Join blocks until f has completed and returns its error. A joiner may
	// run f itself, or other pending work, while it waits.
	Join(f *Future) error
}

// Future is the handle of a forked task. It is executed at most once.
type Future struct {
	fn      TaskFunc
	claimed atomic.Bool
	done    chan struct{}
	err     error
}

func newFuture(fn TaskFunc) *Future {
	return &Future{fn: fn, done: make(chan struct{})}
}

// Done is closed once the task has completed.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Err returns the task's error. Only valid after Done is closed.
func (f *Future) Err() error {
	return f.err
}

// claim reports whether the caller won the right to execute f.
func (f *Future) claim() bool {
	return f.claimed.CompareAndSwap(false, true)
}

func (f *Future) complete(err error) {
	f.fn = nil
	f.err = err
	close(f.done)
}

// PanicError is returned for a task that panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%v: %v\n%s", ErrTaskPanicked, e.Value, e.Stack)
}

func (e *PanicError) Unwrap() error {
	return ErrTaskPanicked
}

func safeRun(fn TaskFunc, w Worker) (panicked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
			panicked = true
		}
	}()
	return false, fn(w)
}
