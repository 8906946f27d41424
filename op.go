// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import (
	"errors"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// chanDispatcher is the structural interface for the package's effects.
// DispatchChan is non-blocking: it returns iox.ErrWouldBlock when the
// channel or lock cannot make progress yet, and any other outcome is
// resumed as a value.
type chanDispatcher interface {
	DispatchChan() (kont.Resumed, error)
}

// Received is the result of a [Pop] effect. OK is false once the
// channel is closed, in which case Value is the zero value.
type Received[T any] struct {
	Value T
	OK    bool
}

// Push is the effect operation for sending a value on a channel.
// Perform(Push[T]{Chan: ch, Value: v}) resumes with the push status,
// StatusOK or StatusClosed.
//
// Effects never wait inside the channel, so a push effect on a
// capacity-0 channel only completes against a goroutine blocked in Pop.
// Channels shared between tasks need a buffer.
type Push[T any] struct {
	kont.Phantom[Status]
	Chan  *Chan[T]
	Value T
}

// DispatchChan handles Push.
// Non-blocking: returns iox.ErrWouldBlock if the channel is full.
func (p Push[T]) DispatchChan() (kont.Resumed, error) {
	s := p.Chan.Push(p.Value, 0)
	if s == StatusFull {
		return nil, iox.ErrWouldBlock
	}
	return s, nil
}

// Pop is the effect operation for receiving from a channel.
// Perform(Pop[T]{Chan: ch}) resumes with a [Received].
type Pop[T any] struct {
	kont.Phantom[Received[T]]
	Chan *Chan[T]
}

// DispatchChan handles Pop.
// Non-blocking: returns iox.ErrWouldBlock if the channel is empty.
func (p Pop[T]) DispatchChan() (kont.Resumed, error) {
	v, s := p.Chan.Pop(0)
	switch s {
	case StatusOK:
		return Received[T]{Value: v, OK: true}, nil
	case StatusClosed:
		return Received[T]{}, nil
	}
	return nil, iox.ErrWouldBlock
}

// Close is the effect operation for closing a channel. It never blocks.
type Close[T any] struct {
	kont.Phantom[struct{}]
	Chan *Chan[T]
}

// DispatchChan handles Close.
func (c Close[T]) DispatchChan() (kont.Resumed, error) {
	c.Chan.Close()
	return struct{}{}, nil
}

// SelectOp is the effect operation for waiting on several channels.
// Perform(SelectOp{Chans: chans}) resumes with the [SelectResult] of the
// first ready operand; it never resumes with the none result.
type SelectOp struct {
	kont.Phantom[SelectResult]
	Chans []Selectable
}

// DispatchChan handles SelectOp with one non-blocking pass in random
// order. It panics if no operand is non-nil.
func (s SelectOp) DispatchChan() (kont.Resumed, error) {
	r, err := TrySelect(s.Chans...)
	if err != nil {
		if errors.Is(err, ErrNoChannels) {
			panic("cosync: select effect without channels")
		}
		return nil, err
	}
	return r, nil
}

// TryLocker is a lock that can be acquired without blocking.
// [*Mutex] and [*RWMutex] implement it.
type TryLocker interface {
	TryLock() bool
	Unlock()
}

// Lock is the effect operation for acquiring a lock.
type Lock struct {
	kont.Phantom[struct{}]
	L TryLocker
}

// DispatchChan handles Lock.
// Non-blocking: returns iox.ErrWouldBlock while the lock is held.
func (l Lock) DispatchChan() (kont.Resumed, error) {
	if !l.L.TryLock() {
		return nil, iox.ErrWouldBlock
	}
	return struct{}{}, nil
}

// Unlock is the effect operation for releasing a lock. It never blocks.
type Unlock struct {
	kont.Phantom[struct{}]
	L TryLocker
}

// DispatchChan handles Unlock.
func (u Unlock) DispatchChan() (kont.Resumed, error) {
	u.L.Unlock()
	return struct{}{}, nil
}

// RLock is the effect operation for acquiring a read lock.
type RLock struct {
	kont.Phantom[struct{}]
	RW *RWMutex
}

// DispatchChan handles RLock.
// Non-blocking: returns iox.ErrWouldBlock while a writer holds the lock.
func (r RLock) DispatchChan() (kont.Resumed, error) {
	if !r.RW.TryRLock() {
		return nil, iox.ErrWouldBlock
	}
	return struct{}{}, nil
}

// RUnlock is the effect operation for releasing a read lock.
// It waits only for the internal count update, which is never held
// across a suspension.
type RUnlock struct {
	kont.Phantom[struct{}]
	RW *RWMutex
}

// DispatchChan handles RUnlock.
func (r RUnlock) DispatchChan() (kont.Resumed, error) {
	r.RW.RUnlock()
	return struct{}{}, nil
}
