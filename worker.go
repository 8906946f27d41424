// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/lfq"
	"github.com/sirupsen/logrus"
)

// DefaultInboxCapacity is the inbox capacity used by NewWorker when it
// is given a non-positive capacity.
const DefaultInboxCapacity = 64

// Task is a cooperative task run by a [Worker]. Every channel and lock
// effect it performs is a suspension point.
type Task = kont.Eff[struct{}]

// task is the per-task state owned by the worker goroutine.
type task struct {
	id     TaskID
	parent TaskID
	desc   string
	expr   kont.Expr[struct{}]
	susp   *kont.Suspension[struct{}]
	op     chanDispatcher
	done   atomix.Uint32
}

func (t *task) alive() bool { return t.done.Load() == 0 }

func (t *task) finish() {
	t.done.Store(1)
	t.susp = nil
	t.op = nil
}

// Worker runs many tasks interleaved on a single goroutine, advancing
// each by one effect per round. It is one cooperative scheduler: tasks
// never run in parallel with each other, and a task only yields at its
// effects.
//
// Tasks are admitted through a bounded single-producer single-consumer
// queue from lfq, so Go must not be called from more than one goroutine
// at a time, and Run must not be called concurrently with itself.
type Worker struct {
	inbox lfq.SPSC[*task]
	tasks []*task
	id    TaskID
}

// NewWorker creates a Worker whose inbox holds up to capacity tasks not
// yet picked up by Run.
func NewWorker(capacity int) *Worker {
	if capacity <= 0 {
		capacity = DefaultInboxCapacity
	}
	w := &Worker{id: nextTaskID()}
	w.inbox.Init(capacity)
	return w
}

// Go admits a task described by desc.
// Non-blocking: returns iox.ErrWouldBlock if the inbox is full.
func (w *Worker) Go(desc string, protocol Task) (TaskID, error) {
	t := &task{
		id:     nextTaskID(),
		parent: w.id,
		desc:   desc,
		expr:   kont.Reify(protocol),
	}
	registerTask(t, 1)
	if err := w.inbox.Enqueue(&t); err != nil {
		t.finish()
		return 0, err
	}
	return t.id, nil
}

// Run steps all admitted tasks round-robin until every task has
// completed and the inbox is empty, which makes it the join point for
// the worker's tasks. When no task can make progress it waits with
// adaptive backoff (iox.Backoff).
//
// A panic inside a task is logged with the task's ID and description
// and then propagated.
func (w *Worker) Run() {
	var bo iox.Backoff
	for {
		w.admit()
		if len(w.tasks) == 0 {
			return
		}
		progress := false
		running := w.tasks[:0]
		for _, t := range w.tasks {
			if w.advance(t) {
				progress = true
			}
			if t.alive() {
				running = append(running, t)
			}
		}
		clear(w.tasks[len(running):])
		w.tasks = running
		if progress {
			bo.Reset()
		} else {
			bo.Wait()
		}
	}
}

// Len returns the number of tasks admitted and not yet completed.
// It must be called from the goroutine running Run.
func (w *Worker) Len() int {
	return len(w.tasks)
}

// admit moves queued tasks onto the run list, running each to its first
// suspension.
func (w *Worker) admit() {
	for {
		t, err := w.inbox.Dequeue()
		if err != nil {
			return
		}
		workerTasks.Inc()
		w.guard(t, func() {
			_, t.susp = kont.StepExpr(t.expr)
		})
		t.expr = kont.Expr[struct{}]{}
		if !w.park(t) {
			continue
		}
		w.tasks = append(w.tasks, t)
	}
}

// advance dispatches the task's pending effect once and reports whether
// it made progress.
func (w *Worker) advance(t *task) bool {
	v, err := t.op.DispatchChan()
	if err != nil {
		return false
	}
	w.guard(t, func() {
		_, t.susp = t.susp.Resume(v)
	})
	w.park(t)
	return true
}

// park records the task's next effect, or finishes it, and reports
// whether the task is still running.
func (w *Worker) park(t *task) bool {
	if t.susp == nil {
		t.finish()
		workerTasks.Dec()
		return false
	}
	cop, ok := t.susp.Op().(chanDispatcher)
	if !ok {
		panic("cosync: unhandled effect in Worker")
	}
	t.op = cop
	return true
}

func (w *Worker) guard(t *task, f func()) {
	defer func() {
		if r := recover(); r != nil {
			t.finish()
			workerTasks.Dec()
			logEntry().WithFields(logrus.Fields{
				"task":   t.id,
				"parent": t.parent,
				"desc":   t.desc,
				"panic":  r,
			}).Error("task panicked")
			panic(r)
		}
	}()
	f()
}
