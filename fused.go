// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import (
	"code.hybscloud.com/kont"
)

// PushThen pushes v on ch and then continues with next.
// A push on a closed channel is dropped; use PushBind to observe it.
// Fuses Perform(Push[T]{...}) + Then.
func PushThen[T, B any](ch *Chan[T], v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Push[T]{Chan: ch, Value: v}), next)
}

// PushBind pushes v on ch and passes the push status to f.
// Fuses Perform(Push[T]{...}) + Bind.
func PushBind[T, B any](ch *Chan[T], v T, f func(Status) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Push[T]{Chan: ch, Value: v}), f)
}

// PopBind receives from ch and passes the value to f.
// ok is false once ch is closed.
// Fuses Perform(Pop[T]{...}) + Bind.
func PopBind[T, B any](ch *Chan[T], f func(v T, ok bool) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Pop[T]{Chan: ch}), func(r Received[T]) kont.Eff[B] {
		return f(r.Value, r.OK)
	})
}

// CloseThen closes ch and then continues with next.
// Fuses Perform(Close[T]{...}) + Then.
func CloseThen[T, B any](ch *Chan[T], next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Close[T]{Chan: ch}), next)
}

// SelectBind waits for the first ready operand of chans and passes the
// result to f.
// Fuses Perform(SelectOp{...}) + Bind.
func SelectBind[B any](chans []Selectable, f func(SelectResult) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(SelectOp{Chans: chans}), f)
}

// LockThen acquires l and then continues with next.
// Fuses Perform(Lock{...}) + Then.
func LockThen[B any](l TryLocker, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Lock{L: l}), next)
}

// UnlockThen releases l and then continues with next.
// Fuses Perform(Unlock{...}) + Then.
func UnlockThen[B any](l TryLocker, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Unlock{L: l}), next)
}

// RLockThen read-locks rw and then continues with next.
// Fuses Perform(RLock{...}) + Then.
func RLockThen[B any](rw *RWMutex, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(RLock{RW: rw}), next)
}

// RUnlockThen read-unlocks rw and then continues with next.
// Fuses Perform(RUnlock{...}) + Then.
func RUnlockThen[B any](rw *RWMutex, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(RUnlock{RW: rw}), next)
}
