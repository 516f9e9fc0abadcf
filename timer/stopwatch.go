// Package timer measures wall-clock time of the phases of a run.
package timer

import (
	"sync"
	"time"

	"github.com/jacobsa/timeutil"
)

// Stage is a named slice of a stopwatch's elapsed time.
type Stage struct {
	Name     string
	Duration time.Duration
}

// Stopwatch accumulates running time across pauses and splits it into named
// stages. It is safe for concurrent use.
type Stopwatch struct {
	mu    sync.Mutex
	clock timeutil.Clock

	started       bool
	paused        bool
	lastStartTime time.Time
	activeElapsed time.Duration

	stages     []Stage
	stageName  string
	stageStart time.Duration
}

// NewStopwatch creates a stopped stopwatch reading time from clock.
func NewStopwatch(clock timeutil.Clock) *Stopwatch {
	return &Stopwatch{clock: clock}
}

// Start starts the stopwatch. It has no effect once started.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.lastStartTime = s.clock.Now()
}

// Pause stops accumulating time until Resume.
func (s *Stopwatch) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.paused {
		return
	}
	s.activeElapsed += s.clock.Now().Sub(s.lastStartTime)
	s.paused = true
}

func (s *Stopwatch) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.paused {
		return
	}
	s.paused = false
	s.lastStartTime = s.clock.Now()
}

// Reset returns the stopwatch to its initial, stopped state.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	s.paused = false
	s.lastStartTime = time.Time{}
	s.activeElapsed = 0
	s.stages = nil
	s.stageName = ""
	s.stageStart = 0
}

// Elapsed returns the accumulated running time.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked()
}

func (s *Stopwatch) elapsedLocked() time.Duration {
	if !s.started || s.paused {
		return s.activeElapsed
	}
	return s.activeElapsed + s.clock.Now().Sub(s.lastStartTime)
}

// Stage closes the current stage, if any, and opens one called name.
func (s *Stopwatch) Stage(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.elapsedLocked()
	s.closeStageLocked(now)
	s.stageName = name
	s.stageStart = now
}

func (s *Stopwatch) closeStageLocked(now time.Duration) {
	if s.stageName == "" {
		return
	}
	s.stages = append(s.stages, Stage{Name: s.stageName, Duration: now - s.stageStart})
	s.stageName = ""
}

// Stages returns the closed stages followed by the open one measured up to
// now.
func (s *Stopwatch) Stages() []Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Stage, len(s.stages), len(s.stages)+1)
	copy(out, s.stages)
	if s.stageName != "" {
		out = append(out, Stage{Name: s.stageName, Duration: s.elapsedLocked() - s.stageStart})
	}
	return out
}
