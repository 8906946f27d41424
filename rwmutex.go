// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import "sync"

var _ sync.Locker = (*RWMutex)(nil)

// RWMutex is a reader/writer lock built from [Mutex] and [Chan].
//
// Readers only hold the internal mutex while they change the reader
// count, so they never block each other. A writer holds the internal
// mutex for its whole critical section. When it arrives while readers
// are inside, it parks on a one-shot wake channel that the last
// departing reader signals, then re-checks the count.
//
// Readers are not held back behind a waiting writer: a steady stream of
// overlapping readers can delay a writer indefinitely. Against a finite
// set of readers the writer always gets in.
type RWMutex struct {
	m       *Mutex // guards readers and waiting; held by the active writer
	w       *Mutex // admits one writer at a time into the wait protocol
	readers int
	waiting *Chan[token] // non-nil only while a writer waits for readers
}

// NewRWMutex creates an unlocked RWMutex.
func NewRWMutex() *RWMutex {
	return &RWMutex{
		m: NewMutex(),
		w: NewMutex(),
	}
}

// RLock locks rw for reading.
func (rw *RWMutex) RLock() {
	rw.m.Lock()
	rw.readers++
	rw.m.Unlock()
}

// RUnlock undoes a single RLock call and wakes a waiting writer when
// the last reader leaves.
func (rw *RWMutex) RUnlock() {
	rw.m.Lock()
	rw.readers--
	if rw.readers == 0 && rw.waiting != nil {
		rw.waiting.Push(token{}, 0)
	}
	rw.m.Unlock()
}

// Lock locks rw for writing. It blocks until no reader holds the lock
// and no other writer is active.
func (rw *RWMutex) Lock() {
	rw.w.Lock()
	rw.m.Lock()
	for rw.readers > 0 {
		wake := NewChan[token](1)
		rw.waiting = wake
		rw.m.Unlock()
		wake.Pop(NoTimeout)
		rw.m.Lock()
		rw.waiting = nil
	}
}

// Unlock unlocks rw for writing.
func (rw *RWMutex) Unlock() {
	rw.m.Unlock()
	rw.w.Unlock()
}

// TryRLock locks rw for reading if no writer holds it and reports
// whether it did.
func (rw *RWMutex) TryRLock() bool {
	if !rw.m.TryLock() {
		return false
	}
	rw.readers++
	rw.m.Unlock()
	return true
}

// TryLock locks rw for writing if it is entirely free and reports
// whether it did.
func (rw *RWMutex) TryLock() bool {
	if !rw.w.TryLock() {
		return false
	}
	if !rw.m.TryLock() {
		rw.w.Unlock()
		return false
	}
	if rw.readers > 0 {
		rw.m.Unlock()
		rw.w.Unlock()
		return false
	}
	return true
}

// Readers returns the number of readers holding the lock. It waits
// while a writer holds the lock, and the value may be stale by the
// time it is used.
func (rw *RWMutex) Readers() int {
	rw.m.Lock()
	n := rw.readers
	rw.m.Unlock()
	return n
}

// RLocker returns a [sync.Locker] that calls RLock and RUnlock.
func (rw *RWMutex) RLocker() sync.Locker {
	return (*rlocker)(rw)
}

type rlocker RWMutex

func (r *rlocker) Lock()   { (*RWMutex)(r).RLock() }
func (r *rlocker) Unlock() { (*RWMutex)(r).RUnlock() }
