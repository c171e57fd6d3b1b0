// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// debouncer coalesces paths until delay passes without a new one, then calls
// fire with the sorted set. fire never runs concurrently with itself: if the
// previous call is still busy the batch is kept and retried one delay later.
type debouncer struct {
	delay   time.Duration
	fire    func(changed []string)
	onBusy  func()
	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	stopped bool
	running atomic.Bool
}

func newDebouncer(delay time.Duration, fire func([]string), onBusy func()) *debouncer {
	return &debouncer{
		delay:   delay,
		fire:    fire,
		onBusy:  onBusy,
		pending: make(map[string]struct{}),
	}
}

// add records path and restarts the quiet period.
func (d *debouncer) add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending[path] = struct{}{}
	d.resetLocked()
}

// stop cancels any scheduled call. Calls already running finish normally.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *debouncer) resetLocked() {
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.flush)
		return
	}
	d.timer.Reset(d.delay)
}

func (d *debouncer) flush() {
	if !d.running.CompareAndSwap(false, true) {
		if d.onBusy != nil {
			d.onBusy()
		}
		d.mu.Lock()
		if !d.stopped {
			d.resetLocked()
		}
		d.mu.Unlock()
		return
	}
	defer d.running.Store(false)

	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	changed := slices.Sorted(maps.Keys(d.pending))
	clear(d.pending)
	d.mu.Unlock()

	d.fire(changed)
}
