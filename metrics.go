package luceneql

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors Parse reports against when a
// caller supplies one via WithMetrics. It is never registered against the
// global/default registry, so two callers in the same process sharing an
// import never collide; each owns the prometheus.Registerer it passes to
// NewMetrics.
type Metrics struct {
	parseTotal    *prometheus.CounterVec
	parseDuration prometheus.Histogram
}

// NewMetrics registers and returns a *Metrics against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		parseTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "luceneql_parse_total",
			Help: "Total number of Parse calls, by result.",
		}, []string{"result"}),
		parseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "luceneql_parse_duration_seconds",
			Help:    "Parse call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.parseTotal, m.parseDuration)
	return m
}

func (m *Metrics) observe(ok bool, seconds float64) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.parseTotal.WithLabelValues(result).Inc()
	m.parseDuration.Observe(seconds)
}
