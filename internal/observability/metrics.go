package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the advisory service.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec // labels: provider, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec

	RecordsAppended     prometheus.Counter
	RecordAppendErrors  prometheus.Counter
	AdvisoriesServed    *prometheus.CounterVec // label: level={good,warning,danger}
	NewsCacheLookups    *prometheus.CounterVec // label: result={hit,miss}
	ScheduledRefreshRun prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.RecordsAppended,
		m.RecordAppendErrors,
		m.AdvisoriesServed,
		m.NewsCacheLookups,
		m.ScheduledRefreshRun,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so parallel tests do not
// trip "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "saarthi",
			Name:      "upstream_requests_total",
			Help:      "Forecast provider requests by outcome.",
		}, []string{"provider", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "saarthi",
			Name:      "upstream_request_duration_seconds",
			Help:      "Forecast provider request duration.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		RecordsAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "saarthi",
			Name:      "weather_records_appended_total",
			Help:      "Weather records persisted to the store.",
		}),
		RecordAppendErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "saarthi",
			Name:      "weather_record_append_errors_total",
			Help:      "Best-effort record writes that failed and were dropped.",
		}),
		AdvisoriesServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "saarthi",
			Name:      "advisories_served_total",
			Help:      "Advisories served by severity level.",
		}, []string{"level"}),
		NewsCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "saarthi",
			Name:      "news_cache_lookups_total",
			Help:      "News cache lookups by result.",
		}, []string{"result"}),
		ScheduledRefreshRun: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "saarthi",
			Name:      "scheduled_refresh_runs_total",
			Help:      "Background refresh cycles executed.",
		}),
	}
}
