// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import (
	"code.hybscloud.com/kont"
)

// Step evaluates a task until its first effect suspension.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance dispatches the suspended operation.
// DispatchChan is non-blocking: it returns iox.ErrWouldBlock when the
// channel or lock cannot make progress yet.
//
// On success (nil error), the suspension is consumed and the task
// advances to the next effect or completion.
// On iox.ErrWouldBlock, the suspension is unconsumed and may be retried.
func Advance[R any](susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	cop, ok := susp.Op().(chanDispatcher)
	if !ok {
		panic("cosync: unhandled effect in Advance")
	}
	v, err := cop.DispatchChan()
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
