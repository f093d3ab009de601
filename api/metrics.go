package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const outcomeOK = "ok"

// metricsCollector counts lookups by outcome: "ok" or the lookup error kind.
type metricsCollector struct {
	lookups  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetricsCollector(reg prometheus.Registerer) *metricsCollector {
	m := &metricsCollector{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tagrelay",
			Name:      "lookups_total",
			Help:      "Phone-number lookups relayed, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tagrelay",
			Name:      "lookup_duration_seconds",
			Help:      "Time spent in the lookup client, by outcome.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.lookups, m.duration)
	return m
}

func (m *metricsCollector) observe(outcome string, d time.Duration) {
	m.lookups.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(d.Seconds())
}
