package breeds

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// DebounceDelay is the quiet window before a debounced call runs.
const DebounceDelay = 200 * time.Millisecond

// Debouncer runs only the last of a burst of triggers, once the burst has been
// quiet for the configured delay. It holds the pending timer so every new
// trigger can stop it before scheduling a replacement.
type Debouncer struct {
	clock clock.WithDelayedExecution
	delay time.Duration

	mu      sync.Mutex
	pending clock.Timer
	gen     uint64
}

// NewDebouncer returns a Debouncer using clk, or the real clock when clk is
// nil. A non-positive delay falls back to DebounceDelay.
func NewDebouncer(delay time.Duration, clk clock.WithDelayedExecution) *Debouncer {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if delay <= 0 {
		delay = DebounceDelay
	}
	return &Debouncer{clock: clk, delay: delay}
}

// Trigger cancels any pending call and schedules fn.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A timer that fired while Stop was racing it must not run.
		current := gen == d.gen
		if current {
			d.pending = nil
		}
		d.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	d.gen++
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
