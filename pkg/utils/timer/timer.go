// Package timer measures elapsed time for CLI operations.
package timer

import (
	"sync"
	"time"
)

// Timer tracks the total elapsed time of an operation and the time spent in its
// current stage.
type Timer interface {
	// Start resets the timer and begins measuring.
	Start()
	// NewStage marks the beginning of a new stage.
	NewStage()
	// GetTiming returns the total elapsed time and the elapsed time of the current stage.
	GetTiming() (time.Duration, time.Duration)
	// Stop freezes the timer.
	Stop()
}

// Impl is the default Timer implementation.
type Impl struct {
	mu         sync.Mutex
	now        func() time.Time
	start      time.Time
	stageStart time.Time
	stopped    time.Time
}

// New creates a timer that uses the wall clock.
func New() *Impl {
	return &Impl{now: time.Now}
}

// NewWithClock creates a timer driven by the given clock function.
func NewWithClock(now func() time.Time) *Impl {
	return &Impl{now: now}
}

// Start resets the timer and begins measuring.
func (t *Impl) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.start = t.now()
	t.stageStart = t.start
	t.stopped = time.Time{}
}

// NewStage marks the beginning of a new stage.
func (t *Impl) NewStage() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stageStart = t.now()
}

// GetTiming returns the total and current-stage durations.
// A timer that was never started reports zero durations.
func (t *Impl) GetTiming() (time.Duration, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.start.IsZero() {
		return 0, 0
	}

	end := t.stopped
	if end.IsZero() {
		end = t.now()
	}

	return end.Sub(t.start), end.Sub(t.stageStart)
}

// Stop freezes the timer.
func (t *Impl) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped.IsZero() {
		t.stopped = t.now()
	}
}
