// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import "time"

// Status is the outcome of a channel operation.
type Status uint32

const (
	// StatusOK means the value was pushed or popped.
	StatusOK Status = iota
	// StatusTimedOut means a bounded wait expired without progress.
	StatusTimedOut
	// StatusClosed means the channel is closed.
	StatusClosed
	// StatusFull means a non-blocking push found no free slot.
	StatusFull
	// StatusEmpty means a non-blocking pop found nothing to take.
	StatusEmpty
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusTimedOut:
		return "timed out"
	case StatusClosed:
		return "closed"
	case StatusFull:
		return "full"
	case StatusEmpty:
		return "empty"
	}
	return "unknown"
}

// NoTimeout makes a channel operation or Select wait indefinitely.
const NoTimeout time.Duration = -1
