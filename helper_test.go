// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync_test

import (
	"time"

	"code.hybscloud.com/kont"

	"code.hybscloud.com/cosync"
)

// execExpr drives a task to completion via a Step+Advance loop.
// Retries on iox.ErrWouldBlock (channel or lock not ready yet).
// Used by stepping tests to exercise the non-blocking path.
func execExpr[R any](protocol kont.Expr[R]) R {
	result, susp := cosync.Step[R](protocol)
	for susp != nil {
		var err error
		result, susp, err = cosync.Advance(susp)
		if err != nil {
			continue
		}
	}
	return result
}

// timingSlack bounds scheduler jitter in wall-clock assertions.
const timingSlack = 100 * time.Millisecond

// runFor is how long the lock stress workloads run.
func runFor(short bool) time.Duration {
	if short {
		return 250 * time.Millisecond
	}
	return 2 * time.Second
}
