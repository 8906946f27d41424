// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import (
	"fmt"
	"time"

	"code.hybscloud.com/atomix"
)

const (
	timerArmed uint32 = iota
	timerFiredState
	timerDisposed
)

// TimerChan is a channel that receives the expiration time exactly once,
// when its duration has elapsed. It can be passed to [Select] to bound a
// wait or to build ticks.
//
// TimerChan never closes by itself; after firing it stays a regular
// channel. Call Dispose when the timer is no longer needed so a pending
// timer never pushes into a channel nobody reads.
type TimerChan struct {
	*Chan[time.Time]
	timers Timers
	id     TimerID
	state  atomix.Uint32
}

type timerConfig struct {
	timers Timers
	desc   string
}

// TimerOption configures a [TimerChan].
type TimerOption func(*timerConfig)

// WithTimers schedules the timer on ts instead of [DefaultTimers].
// It panics if ts is nil.
func WithTimers(ts Timers) TimerOption {
	return func(c *timerConfig) {
		if ts == nil {
			panic("cosync: nil Timers")
		}
		c.timers = ts
	}
}

// WithDescription sets the description shown for the timer by [Watch].
func WithDescription(desc string) TimerOption {
	return func(c *timerConfig) {
		c.desc = desc
	}
}

// NewTimerChan creates a TimerChan that fires after d.
func NewTimerChan(d time.Duration, opts ...TimerOption) *TimerChan {
	cfg := timerConfig{timers: DefaultTimers}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.desc == "" {
		cfg.desc = fmt.Sprintf("TimerChan (%s)", d)
	}

	t := &TimerChan{
		Chan:   NewChan[time.Time](1),
		timers: cfg.timers,
	}
	t.id = cfg.timers.After(d, t.fire)
	registerTimer(cfg.timers, t.id, cfg.desc, 1)
	return t
}

// fire runs on the timer goroutine. It loses against a concurrent
// Dispose, so nothing is pushed once Dispose has returned.
func (t *TimerChan) fire() {
	if t.state.CompareAndSwap(timerArmed, timerFiredState) {
		t.Chan.Push(time.Now(), 0)
	}
}

// Dispose cancels the timer if it has not fired yet.
// It is safe to call more than once and after the timer fired.
func (t *TimerChan) Dispose() {
	if t.state.CompareAndSwap(timerArmed, timerDisposed) {
		t.timers.Cancel(t.id)
	}
}

// Fired reports whether the timer has pushed its value.
func (t *TimerChan) Fired() bool {
	return t.state.Load() == timerFiredState
}

// ID returns the timer's ID in its scheduler.
func (t *TimerChan) ID() TimerID {
	return t.id
}

// C returns the underlying channel.
func (t *TimerChan) C() *Chan[time.Time] {
	return t.Chan
}

// live implements Selectable.
func (t *TimerChan) live() bool {
	return t != nil && t.Chan != nil
}
