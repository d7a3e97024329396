package analyzer

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid triggers per key: only the function from the
// last Trigger within the interval runs. Used for draft analysis so a
// burst of keystrokes costs one analysis.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer with the given quiet interval
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Debouncer{interval: interval, timers: map[string]*time.Timer{}}
}

// Trigger schedules fn to run after the quiet interval. A newer trigger
// for the same key supersedes the pending one silently.
func (d *Debouncer) Trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		current, ok := d.timers[key]
		if !ok || current != timer || d.stopped {
			d.mu.Unlock()
			return // superseded or shut down
		}
		delete(d.timers, key)
		d.mu.Unlock()
		fn()
	})
	d.timers[key] = timer
}

// Pending reports the number of keys with a scheduled run
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}

// Stop cancels all pending runs. The debouncer refuses triggers afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for k, t := range d.timers {
		t.Stop()
		delete(d.timers, k)
	}
}
