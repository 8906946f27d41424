// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// pruneEvery is how many registrations pass between two prunes of a
// debug table.
const pruneEvery = 500

// debugEntry describes one registered task or timer.
type debugEntry struct {
	id           uint64
	desc         string
	location     string
	registeredAt time.Time
	parent       TaskID
	alive        func() bool
}

// debugTable is an append-only map pruned against a liveness probe.
type debugTable struct {
	mu      sync.Mutex
	entries map[uint64]debugEntry
	adds    int
}

func (dt *debugTable) add(e debugEntry) {
	dt.mu.Lock()
	defer dt.mu.Unlock()
	if dt.entries == nil {
		dt.entries = make(map[uint64]debugEntry)
	}
	dt.entries[e.id] = e
	dt.adds++
	if dt.adds%pruneEvery == 0 {
		dt.pruneLocked()
	}
}

func (dt *debugTable) pruneLocked() {
	for id, e := range dt.entries {
		if !e.alive() {
			delete(dt.entries, id)
		}
	}
}

// live prunes the table and returns the remaining entries by ID.
func (dt *debugTable) live() []debugEntry {
	dt.mu.Lock()
	dt.pruneLocked()
	out := make([]debugEntry, 0, len(dt.entries))
	for _, e := range dt.entries {
		out = append(out, e)
	}
	dt.mu.Unlock()
	slices.SortFunc(out, func(a, b debugEntry) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	return out
}

var (
	debugTasks  debugTable
	debugTimers debugTable
)

func registerTimer(ts Timers, id TimerID, desc string, skip int) {
	debugTimers.add(debugEntry{
		id:           uint64(id),
		desc:         desc,
		location:     callerLocation(skip + 1),
		registeredAt: time.Now(),
		alive:        func() bool { return ts.Pending(id) },
	})
}

func registerTask(t *task, skip int) {
	debugTasks.add(debugEntry{
		id:           uint64(t.id),
		desc:         t.desc,
		location:     callerLocation(skip + 1),
		registeredAt: time.Now(),
		parent:       t.parent,
		alive:        t.alive,
	})
}

// callerLocation formats the caller skip frames above it as the last
// path elements of its file and its line.
func callerLocation(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "(unknown)"
	}
	path := strings.Split(file, string(os.PathSeparator))
	if len(path) > 3 {
		path = path[len(path)-3:]
	}
	return fmt.Sprintf("%s:%d", strings.Join(path, string(os.PathSeparator)), line)
}

type watchConfig struct {
	logger *logrus.Logger
}

// WatchOption configures [Watch].
type WatchOption func(*watchConfig)

// WithWatchLogger makes Watch log to l instead of the package logger.
func WithWatchLogger(l *logrus.Logger) WatchOption {
	return func(c *watchConfig) {
		c.logger = l
	}
}

// Watch logs the live worker tasks and timers every interval until ctx
// is done or nothing is left alive. It is a debugging aid and blocks the
// calling goroutine; run it with go.
func Watch(ctx context.Context, interval time.Duration, opts ...WatchOption) {
	var cfg watchConfig
	for _, o := range opts {
		o(&cfg)
	}
	entry := logEntry()
	if cfg.logger != nil {
		entry = cfg.logger.WithField("pkg", "cosync")
	}

	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}
		if !report(entry) {
			return
		}
	}
}

// report logs one snapshot and reports whether anything is still alive.
func report(entry *logrus.Entry) bool {
	tasks := debugTasks.live()
	timers := debugTimers.live()
	if len(tasks) == 0 {
		entry.Info("no tasks running")
	} else {
		entry.WithField("count", len(tasks)).Info("tasks running")
		for _, e := range tasks {
			entry.WithFields(logrus.Fields{
				"task":       e.id,
				"parent":     e.parent,
				"desc":       e.desc,
				"location":   e.location,
				"registered": e.registeredAt.Format(time.RFC3339Nano),
			}).Info("task")
		}
	}
	if len(timers) == 0 {
		entry.Info("no timers running")
	} else {
		entry.WithField("count", len(timers)).Info("timers running")
		for _, e := range timers {
			entry.WithFields(logrus.Fields{
				"timer":    e.id,
				"desc":     e.desc,
				"location": e.location,
			}).Info("timer")
		}
	}
	return len(tasks) > 0 || len(timers) > 0
}
