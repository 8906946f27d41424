// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// chanHandler implements kont.Handler for the package's effects.
// Waits on iox.ErrWouldBlock, converting non-blocking dispatch
// into blocking evaluation for Exec/ExecExpr.
type chanHandler[R any] struct{}

// Dispatch implements kont.Handler via structural interface assertion.
// Waits past the iox.ErrWouldBlock boundary with adaptive backoff.
func (chanHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	cop, ok := op.(chanDispatcher)
	if !ok {
		panic("cosync: unhandled effect in chanHandler")
	}
	return dispatchWait(cop), true
}

// dispatchWait blocks until DispatchChan succeeds, backing off on
// iox.ErrWouldBlock with iox.Backoff.
func dispatchWait(cop chanDispatcher) kont.Resumed {
	var bo iox.Backoff
	for {
		v, err := cop.DispatchChan()
		if err == nil {
			return v
		}
		bo.Wait()
	}
}

// Exec runs a Cont-world task on the calling goroutine until it
// completes. Each channel or lock effect that cannot proceed is retried
// with adaptive backoff (iox.Backoff).
func Exec[R any](protocol kont.Eff[R]) R {
	return kont.Handle(protocol, chanHandler[R]{})
}

// ExecExpr runs an Expr-world task on the calling goroutine until it
// completes, like Exec.
func ExecExpr[R any](protocol kont.Expr[R]) R {
	return kont.HandleExpr(protocol, chanHandler[R]{})
}
