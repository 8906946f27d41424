// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import "sync"

var (
	_ sync.Locker = (*Mutex)(nil)
	_ sync.Locker = NopMutex{}
)

// token is the single value circulating through a Mutex.
type token = struct{}

// Mutex is a mutual exclusion lock built on a capacity-1 [Chan] used as
// a binary semaphore: Lock pushes the only token, Unlock pops it.
//
// Waiters are woken in whatever order the channel wakes them; Mutex
// makes no fairness promise. A Mutex is not associated with a
// goroutine, so one goroutine may Lock and another Unlock.
type Mutex struct {
	token *Chan[token]
}

// NewMutex creates an unlocked Mutex.
func NewMutex() *Mutex {
	return &Mutex{token: NewChan[token](1)}
}

// Lock blocks until the mutex is acquired.
func (m *Mutex) Lock() {
	m.token.Push(token{}, NoTimeout)
}

// TryLock acquires the mutex if it is free and reports whether it did.
func (m *Mutex) TryLock() bool {
	return m.token.Push(token{}, 0) == StatusOK
}

// Unlock releases the mutex.
// Unlocking a mutex that is not locked is a caller error; it is not
// detected and leaves the mutex unlocked.
func (m *Mutex) Unlock() {
	m.token.Pop(0)
}

// Locked reports whether the mutex is currently held.
func (m *Mutex) Locked() bool {
	return m.token.IsFull()
}

// NopMutex is a [sync.Locker] whose Lock and Unlock do nothing.
// It stands in for a real lock to measure what happens without mutual
// exclusion and provides no ordering guarantee at all.
type NopMutex struct{}

// Lock does nothing.
func (NopMutex) Lock() {}

// Unlock does nothing.
func (NopMutex) Unlock() {}
