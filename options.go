// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import (
	"math/rand/v2"
	"time"
)

// DefaultPollInterval is the per-channel probe timeout used by Select.
// It is far below any caller-visible timeout and bounds how late a
// timed-out Select may return.
const DefaultPollInterval = time.Millisecond

type config struct {
	poll    time.Duration
	rnd     *rand.Rand
	metrics bool
}

// Option configures a [Selector].
type Option func(*config)

func defaultConfig() config {
	return config{
		poll:    DefaultPollInterval,
		metrics: true,
	}
}

// WithPollInterval sets how long each channel probe waits.
// It panics if d is not positive.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		if d <= 0 {
			panic("cosync: poll interval must be positive")
		}
		c.poll = d
	}
}

// WithRand makes the selector shuffle with r instead of the
// process-wide source. A selector built with WithRand must not be
// used from several goroutines at once, since r is not synchronized.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		c.rnd = r
	}
}

// WithoutMetrics stops the selector from updating the Prometheus
// collectors.
func WithoutMetrics() Option {
	return func(c *config) {
		c.metrics = false
	}
}
