package watch

import (
	"log/slog"
	"sync"
	"time"
)

// Debouncer coalesces bursts of file events into one callback. Editors
// often write a file in several steps; only the last event of a burst
// triggers a run. Callbacks never overlap; a run that fires while another
// is in progress waits for it.
type Debouncer struct {
	interval time.Duration
	callback func(trigger string)

	runMu sync.Mutex

	mu          sync.Mutex
	timer       *time.Timer
	lastTrigger string
}

// NewDebouncer creates a debouncer that waits for interval of quiet before
// calling callback with the most recent trigger.
func NewDebouncer(interval time.Duration, callback func(trigger string)) *Debouncer {
	return &Debouncer{
		interval: interval,
		callback: callback,
	}
}

// Trigger records an event and restarts the quiet period.
func (d *Debouncer) Trigger(trigger string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lastTrigger = trigger

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("watch callback panicked", slog.Any("error", r))
		}
	}()

	d.mu.Lock()
	trigger := d.lastTrigger
	d.mu.Unlock()

	d.callback(trigger)
}

// Stop cancels a pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
