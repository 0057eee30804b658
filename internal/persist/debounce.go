package persist

import (
	"sync"
	"time"
)

// Clock abstracts timer creation so tests can advance virtual time instead
// of sleeping through real debounce windows.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Reset(d time.Duration) bool
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns the wall-clock implementation.
func RealClock() Clock {
	return realClock{}
}

// Debouncer coalesces a burst of notifications into a single callback per
// quiescence window. Each Notify restarts the window, so only the state at
// the end of the burst is flushed. One Debouncer exists per save kind
// (reorder, settings); the pending task is cancel-and-reschedule, never a
// queue.
type Debouncer struct {
	clock Clock
	delay time.Duration

	mu      sync.Mutex
	timer   Timer
	pending bool
	fn      func()
}

func NewDebouncer(clock Clock, delay time.Duration) *Debouncer {
	if clock == nil {
		clock = RealClock()
	}
	return &Debouncer{clock: clock, delay: delay}
}

// Notify schedules fn to run after the quiescence window, replacing any
// previously scheduled callback. The latest fn wins.
func (d *Debouncer) Notify(fn func()) {
	d.mu.Lock()
	d.pending = true
	d.fn = fn
	if d.timer == nil {
		d.timer = d.clock.AfterFunc(d.delay, d.onTimer)
		d.mu.Unlock()
		return
	}
	d.timer.Reset(d.delay)
	d.mu.Unlock()
}

// Cancel drops any pending callback without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	d.pending = false
	d.fn = nil
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
}

// Pending reports whether a flush is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer) onTimer() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	fn := d.fn
	d.fn = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}
