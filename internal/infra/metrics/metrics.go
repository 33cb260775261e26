// Package metrics exposes Prometheus collectors for the moderation webhook.
//
// Labels are bounded: action is one of the known moderation tokens or
// "unknown", and step is one of the moderation processing steps.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ivankudzin/tgevents/internal/domain/enums"
)

const unknownAction = "unknown"

type Metrics struct {
	callbacks    *prometheus.CounterVec
	stepFailures *prometheus.CounterVec
	duration     prometheus.Histogram
	httpRequests *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		callbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moderation_callbacks_total",
				Help: "Moderation callbacks processed, by action.",
			},
			[]string{"action"},
		),
		stepFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moderation_step_failures_total",
				Help: "Swallowed failures of moderation processing steps, by step.",
			},
			[]string{"step"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "moderation_callback_duration_seconds",
				Help:    "Wall time spent processing one moderation callback.",
				Buckets: prometheus.DefBuckets,
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_http_requests_total",
				Help: "HTTP requests served, by route and status.",
			},
			[]string{"route", "status"},
		),
	}

	for _, c := range []prometheus.Collector{m.callbacks, m.stepFailures, m.duration, m.httpRequests} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) ObserveCallback(action string, duration time.Duration) {
	if m == nil {
		return
	}
	if !enums.ModerationAction(action).Known() {
		action = unknownAction
	}
	m.callbacks.WithLabelValues(action).Inc()
	m.duration.Observe(duration.Seconds())
}

func (m *Metrics) ObserveStepFailure(step string) {
	if m == nil {
		return
	}
	m.stepFailures.WithLabelValues(step).Inc()
}

func (m *Metrics) ObserveHTTPRequest(route string, status int) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
