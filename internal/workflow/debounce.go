package workflow

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is how long address input must settle before a
// location search fires.
const DefaultSearchDebounce = 500 * time.Millisecond

// debouncer runs the latest scheduled function after a quiet period.
// Scheduling again before the delay elapses cancels the pending run.
type debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

// Do schedules fn, replacing any pending run.
func (d *debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending run.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
