// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "cosync"

var (
	selectPolls = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "select_polls_total",
			Help:      "Channel probes issued by Select.",
		},
	)

	selectResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "select_results_total",
			Help:      "Select outcomes by kind: value, closed or timeout.",
		},
		[]string{"outcome"},
	)

	timersActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "timers_active",
			Help:      "Timers scheduled and not yet fired or cancelled.",
		},
	)

	timerEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "timer_events_total",
			Help:      "Timer lifecycle events: scheduled, fired or cancelled.",
		},
		[]string{"event"},
	)

	workerTasks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "worker_tasks",
			Help:      "Tasks currently owned by running workers.",
		},
	)
)

const (
	outcomeValue   = "value"
	outcomeClosed  = "closed"
	outcomeTimeout = "timeout"

	timerScheduled = "scheduled"
	timerFired     = "fired"
	timerCancelled = "cancelled"
)

// Collectors returns the package's Prometheus collectors.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{selectPolls, selectResults, timersActive, timerEvents, workerTasks}
}

// RegisterMetrics registers the package's collectors with reg.
// Collectors that are already registered are skipped.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
