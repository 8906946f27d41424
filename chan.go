// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import (
	"time"

	"code.hybscloud.com/atomix"
)

// Chan is a bounded FIFO channel with timed push and pop.
//
// The element queue is a native Go channel, so blocking and wake-up are
// safe across goroutines running in parallel. The element queue itself is
// never closed: closing flips the closed word and closes a separate done
// signal, which makes push after close an error status instead of a panic.
//
// Once closed, every pop reports StatusClosed without waiting, even if
// values are still buffered; those values are never delivered. An
// operation racing with Close may still complete as if it happened first.
type Chan[T any] struct {
	ch     chan T
	done   chan struct{}
	closed atomix.Uint32
	status atomix.Uint32
}

// NewChan creates a channel with the given capacity.
// A capacity of 0 makes every push a rendezvous with a pop.
func NewChan[T any](capacity int) *Chan[T] {
	if capacity < 0 {
		panic("cosync: negative channel capacity")
	}
	return &Chan[T]{
		ch:   make(chan T, capacity),
		done: make(chan struct{}),
	}
}

// Push sends v, waiting at most timeout for a free slot.
// A negative timeout waits indefinitely, zero never waits.
func (c *Chan[T]) Push(v T, timeout time.Duration) Status {
	return c.record(c.push(v, timeout))
}

func (c *Chan[T]) push(v T, timeout time.Duration) Status {
	if c.closed.Load() != 0 {
		return StatusClosed
	}
	if timeout == 0 {
		select {
		case c.ch <- v:
			return StatusOK
		default:
			return StatusFull
		}
	}
	if timeout < 0 {
		select {
		case c.ch <- v:
			return StatusOK
		case <-c.done:
			return StatusClosed
		}
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case c.ch <- v:
		return StatusOK
	case <-c.done:
		return StatusClosed
	case <-t.C:
		return StatusTimedOut
	}
}

// Pop receives the oldest value, waiting at most timeout for one.
// A negative timeout waits indefinitely, zero never waits.
func (c *Chan[T]) Pop(timeout time.Duration) (T, Status) {
	v, s := c.pop(timeout)
	c.record(s)
	return v, s
}

func (c *Chan[T]) pop(timeout time.Duration) (v T, s Status) {
	if c.closed.Load() != 0 {
		return v, StatusClosed
	}
	select {
	case v = <-c.ch:
		return v, StatusOK
	default:
	}
	if timeout == 0 {
		return v, StatusEmpty
	}
	var expired <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		expired = t.C
	}
	select {
	case v = <-c.ch:
		return v, StatusOK
	case <-c.done:
		return v, StatusClosed
	case <-expired:
		return v, StatusTimedOut
	}
}

// TryPush sends v without waiting.
// Returns iox.ErrWouldBlock when the channel is full and ErrClosed
// after Close.
func (c *Chan[T]) TryPush(v T) error {
	return statusError(c.Push(v, 0))
}

// TryPop receives a value without waiting.
// Returns iox.ErrWouldBlock when the channel is empty and ErrClosed
// once the channel is closed.
func (c *Chan[T]) TryPop() (T, error) {
	v, s := c.Pop(0)
	return v, statusError(s)
}

// Close closes the channel and wakes every waiting push and pop.
// Close is idempotent.
func (c *Chan[T]) Close() {
	if c.closed.CompareAndSwap(0, 1) {
		close(c.done)
	}
}

// Closed reports whether Close has been called.
func (c *Chan[T]) Closed() bool {
	return c.closed.Load() != 0
}

// Len returns the number of buffered values. After Close it counts
// values that will never be delivered.
func (c *Chan[T]) Len() int { return len(c.ch) }

// Cap returns the buffer capacity.
func (c *Chan[T]) Cap() int { return cap(c.ch) }

// IsEmpty reports whether no value is buffered.
func (c *Chan[T]) IsEmpty() bool { return len(c.ch) == 0 }

// IsFull reports whether a push would have to wait.
func (c *Chan[T]) IsFull() bool { return len(c.ch) == cap(c.ch) }

// Status returns the status of the most recent push or pop by any
// goroutine. Under contention it is informational only; prefer the
// status returned by the operation itself.
func (c *Chan[T]) Status() Status {
	return Status(c.status.Load())
}

func (c *Chan[T]) record(s Status) Status {
	c.status.Store(uint32(s))
	return s
}

// live implements Selectable.
func (c *Chan[T]) live() bool { return c != nil }

// pollAny implements Selectable.
func (c *Chan[T]) pollAny(timeout time.Duration) (any, Status) {
	v, s := c.Pop(timeout)
	if s != StatusOK {
		return nil, s
	}
	return v, s
}
