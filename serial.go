// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import "code.hybscloud.com/atomix"

// TimerID identifies a scheduled timer. IDs are unique per process.
type TimerID uint64

// TaskID identifies a task admitted to a [Worker]. IDs are unique per
// process.
type TaskID uint64

var (
	timerCounter atomix.Uint64
	taskCounter  atomix.Uint64
)

// nextTimerID returns the next monotonically increasing timer ID.
func nextTimerID() TimerID {
	return TimerID(timerCounter.Add(1))
}

// nextTaskID returns the next monotonically increasing task ID.
func nextTaskID() TaskID {
	return TaskID(taskCounter.Add(1))
}
