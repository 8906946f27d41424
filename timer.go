// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import (
	"slices"
	"sync"
	"time"
)

// Timers schedules one-shot callbacks.
//
// After runs f once, on its own goroutine, after d has elapsed.
// Cancel stops a pending timer and reports whether it was still
// pending; once Cancel returns true, f never runs. Pending reports
// whether a timer has neither fired nor been cancelled, and Active
// lists every such timer.
type Timers interface {
	After(d time.Duration, f func()) TimerID
	Cancel(id TimerID) bool
	Pending(id TimerID) bool
	Active() []TimerID
}

// DefaultTimers is the process-wide timer scheduler used by
// [NewTimerChan] unless [WithTimers] says otherwise.
var DefaultTimers Timers = NewRuntimeTimers()

// RuntimeTimers implements [Timers] on top of the Go runtime timers.
type RuntimeTimers struct {
	mu      sync.Mutex
	pending map[TimerID]*time.Timer
}

// NewRuntimeTimers creates an empty scheduler.
func NewRuntimeTimers() *RuntimeTimers {
	return &RuntimeTimers{pending: make(map[TimerID]*time.Timer)}
}

// After schedules f to run once after d.
func (rt *RuntimeTimers) After(d time.Duration, f func()) TimerID {
	id := nextTimerID()
	// The callback takes mu before looking up id, so it cannot observe
	// the table before the insert below.
	rt.mu.Lock()
	rt.pending[id] = time.AfterFunc(d, func() { rt.fire(id, f) })
	rt.mu.Unlock()

	timersActive.Inc()
	timerEvents.WithLabelValues(timerScheduled).Inc()
	return id
}

func (rt *RuntimeTimers) fire(id TimerID, f func()) {
	rt.mu.Lock()
	_, ok := rt.pending[id]
	delete(rt.pending, id)
	rt.mu.Unlock()
	if !ok {
		return
	}
	timersActive.Dec()
	timerEvents.WithLabelValues(timerFired).Inc()
	f()
}

// Cancel stops the timer if it is still pending.
func (rt *RuntimeTimers) Cancel(id TimerID) bool {
	rt.mu.Lock()
	t, ok := rt.pending[id]
	delete(rt.pending, id)
	rt.mu.Unlock()
	if !ok {
		return false
	}
	t.Stop()
	timersActive.Dec()
	timerEvents.WithLabelValues(timerCancelled).Inc()
	return true
}

// Pending reports whether the timer has neither fired nor been cancelled.
func (rt *RuntimeTimers) Pending(id TimerID) bool {
	rt.mu.Lock()
	_, ok := rt.pending[id]
	rt.mu.Unlock()
	return ok
}

// Active returns the pending timers in scheduling order.
func (rt *RuntimeTimers) Active() []TimerID {
	rt.mu.Lock()
	ids := make([]TimerID, 0, len(rt.pending))
	for id := range rt.pending {
		ids = append(ids, id)
	}
	rt.mu.Unlock()
	slices.Sort(ids)
	return ids
}
