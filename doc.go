// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cosync provides coordination primitives for cooperative tasks
// built on a single blocking channel type.
//
// # Architecture
//
//   - Channel: [Chan] is a bounded FIFO with timed Push/Pop, idempotent
//     Close and an observable [Status]. TryPush/TryPop return
//     [code.hybscloud.com/iox.ErrWouldBlock] on backpressure.
//   - Select: [Select] waits on several channels by polling each with a
//     short timeout, reshuffling the operands before every probe so ready
//     channels are chosen uniformly. A closed operand is always ready.
//   - Locks: [Mutex] is a capacity-1 channel used as a binary semaphore.
//     [RWMutex] guards a reader count with a Mutex and parks a writer on a
//     wake channel until the last reader leaves. [NopMutex] does nothing.
//   - Timers: [TimerChan] receives one value when its duration elapses,
//     scheduled on a [Timers] implementation such as [RuntimeTimers].
//
// # Cooperative tasks
//
// Channel and lock operations are also available as effects on
// [code.hybscloud.com/kont]: [Push], [Pop], [Close], [SelectOp], [Lock],
// [Unlock], [RLock], [RUnlock], with fused helpers [PushThen], [PopBind],
// [SelectBind], [LockThen] and friends. [Exec] runs a task on the calling
// goroutine, [Step] and [Advance] evaluate it one effect at a time, and a
// [Worker] interleaves many tasks on one goroutine. [ExecError],
// [StepError] and [AdvanceError] also handle kont error effects.
//
// # Observability
//
// [Watch] logs live worker tasks and timers with logrus, and
// [RegisterMetrics] exposes Select and timer counters to Prometheus.
//
// # Example
//
//	c1 := cosync.NewChan[string](1)
//	c2 := cosync.NewChan[int](1)
//	for {
//		t := cosync.NewTimerChan(200 * time.Millisecond)
//		r, _ := cosync.Select(cosync.NoTimeout, c1, c2, t)
//		t.Dispose()
//		switch {
//		case r.Selected(c1):
//			s, _ := cosync.Value[string](r)
//			fmt.Println("c1:", s)
//		case r.Selected(c2):
//			n, _ := cosync.Value[int](r)
//			fmt.Println("c2:", n)
//		case r.Selected(t):
//			fmt.Println("nothing within 200ms")
//		}
//	}
package cosync
