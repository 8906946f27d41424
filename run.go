// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import (
	"fmt"
)

// Run runs tasks interleaved on the calling goroutine and returns once
// all of them have completed. It is a [Worker] sized for the given
// tasks, started and joined in one call.
func Run(tasks ...Task) error {
	w := NewWorker(len(tasks))
	for i, t := range tasks {
		if _, err := w.Go(fmt.Sprintf("task %d", i), t); err != nil {
			return err
		}
	}
	w.Run()
	return nil
}
