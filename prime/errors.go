package prime

import "errors"

var (
	// ErrInvalidRange is returned for a negative limit or a range whose
	// start is past its end. It is reported before any work is scheduled.
	ErrInvalidRange = errors.New("invalid range")

	ErrInvalidThreshold = errors.New("threshold must be at least 1")

	// ErrTaskFault wraps any failure of the task tree: a rejected or stopped
	// pool, or a panic inside a task.
	ErrTaskFault = errors.New("task fault")
)
