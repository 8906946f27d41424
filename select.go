// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import (
	"math/rand/v2"
	"time"

	"code.hybscloud.com/iox"
)

// Selectable is an operand of [Select]: any [*Chan] or [*TimerChan].
// The interface is sealed; only this package implements it.
type Selectable interface {
	live() bool
	pollAny(timeout time.Duration) (any, Status)
}

// SelectResult is the outcome of a Select call.
//
// A received value has Chan set and Status StatusOK. A closed operand
// has Chan set, Value nil and Status StatusClosed. When nothing became
// ready before the timeout, Chan and Value are nil and Status is
// StatusTimedOut.
type SelectResult struct {
	Chan   Selectable
	Value  any
	Status Status
}

// Selected reports whether the result came from ch.
func (r SelectResult) Selected(ch Selectable) bool {
	return r.Chan != nil && r.Chan == ch
}

// None reports whether no operand was selected.
func (r SelectResult) None() bool {
	return r.Chan == nil
}

// Value returns the received value as a T.
// ok is false for the none and closed results.
func Value[T any](r SelectResult) (v T, ok bool) {
	if r.Status != StatusOK {
		return v, false
	}
	v, ok = r.Value.(T)
	return v, ok
}

var noneSelected = SelectResult{Status: StatusTimedOut}

// Selector waits on several channels at once by polling them.
// The zero value is not usable; create one with NewSelector.
type Selector struct {
	cfg config
}

// NewSelector creates a Selector configured by opts.
func NewSelector(opts ...Option) *Selector {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Selector{cfg: cfg}
}

var defaultSelector = NewSelector()

// Select waits until one of chans has a value or is closed, and
// consumes exactly that one value. Ties between ready operands are
// broken uniformly at random.
//
// With a negative timeout Select waits indefinitely. A zero timeout
// checks every operand once without waiting. Otherwise Select returns
// the none result once timeout has elapsed, at most one poll interval
// late.
//
// Nil operands are ignored. Select returns ErrNoChannels when called
// without operands, and also when every operand is nil and no timeout
// bounds the wait.
func Select(timeout time.Duration, chans ...Selectable) (SelectResult, error) {
	return defaultSelector.Select(timeout, chans...)
}

// TrySelect makes one pass over chans in random order without waiting.
// It returns iox.ErrWouldBlock when no operand is ready.
func TrySelect(chans ...Selectable) (SelectResult, error) {
	return defaultSelector.TrySelect(chans...)
}

// Select is the configurable form of the package-level [Select].
func (s *Selector) Select(timeout time.Duration, chans ...Selectable) (SelectResult, error) {
	if len(chans) == 0 {
		return noneSelected, ErrNoChannels
	}
	live := liveOperands(chans)
	if len(live) == 0 {
		if timeout < 0 {
			return noneSelected, ErrNoChannels
		}
		time.Sleep(timeout)
		s.observe(noneSelected)
		return noneSelected, nil
	}

	if timeout == 0 {
		if r, ok := s.pass(live); ok {
			return r, nil
		}
		s.observe(noneSelected)
		return noneSelected, nil
	}

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	i := 0
	for {
		s.shuffle(live)
		ch := live[i]
		v, st := ch.pollAny(s.cfg.poll)
		if s.cfg.metrics {
			selectPolls.Inc()
		}
		if st == StatusOK || st == StatusClosed {
			r := SelectResult{Chan: ch, Value: v, Status: st}
			s.observe(r)
			return r, nil
		}
		if timeout > 0 && !time.Now().Before(deadline) {
			s.observe(noneSelected)
			return noneSelected, nil
		}
		i++
		if i == len(live) {
			i = 0
		}
	}
}

// TrySelect is the configurable form of the package-level [TrySelect].
func (s *Selector) TrySelect(chans ...Selectable) (SelectResult, error) {
	live := liveOperands(chans)
	if len(live) == 0 {
		return noneSelected, ErrNoChannels
	}
	if r, ok := s.pass(live); ok {
		return r, nil
	}
	return noneSelected, iox.ErrWouldBlock
}

// pass polls every operand once, in random order, without waiting.
func (s *Selector) pass(live []Selectable) (SelectResult, bool) {
	s.shuffle(live)
	for _, ch := range live {
		v, st := ch.pollAny(0)
		if s.cfg.metrics {
			selectPolls.Inc()
		}
		if st == StatusOK || st == StatusClosed {
			r := SelectResult{Chan: ch, Value: v, Status: st}
			s.observe(r)
			return r, true
		}
	}
	return noneSelected, false
}

// liveOperands copies the non-nil operands so shuffling never
// reorders the caller's slice.
func liveOperands(chans []Selectable) []Selectable {
	live := make([]Selectable, 0, len(chans))
	for _, ch := range chans {
		if ch != nil && ch.live() {
			live = append(live, ch)
		}
	}
	return live
}

func (s *Selector) shuffle(chans []Selectable) {
	if len(chans) < 2 {
		return
	}
	swap := func(i, j int) { chans[i], chans[j] = chans[j], chans[i] }
	if s.cfg.rnd != nil {
		s.cfg.rnd.Shuffle(len(chans), swap)
		return
	}
	rand.Shuffle(len(chans), swap)
}

func (s *Selector) observe(r SelectResult) {
	if !s.cfg.metrics {
		return
	}
	switch {
	case r.Chan == nil:
		selectResults.WithLabelValues(outcomeTimeout).Inc()
	case r.Status == StatusClosed:
		selectResults.WithLabelValues(outcomeClosed).Inc()
	default:
		selectResults.WithLabelValues(outcomeValue).Inc()
	}
}
