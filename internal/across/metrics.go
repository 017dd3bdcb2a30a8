package across

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records client-side request counts and latencies. A nil *Metrics
// records nothing.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics registers the client metrics on reg. It returns nil when reg is
// nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "across",
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Total number of ACROSS API requests by outcome",
			},
			[]string{"mission", "api", "method", "code"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "across",
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "ACROSS API request duration in seconds",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"mission", "api", "method"},
		),
	}
}

// observe records one request. code is 0 when no response arrived.
func (m *Metrics) observe(mission Mission, api API, method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if code != 0 {
		label = strconv.Itoa(code)
	}
	m.RequestsTotal.WithLabelValues(string(mission), string(api), method, label).Inc()
	m.RequestDuration.WithLabelValues(string(mission), string(api), method).Observe(elapsed.Seconds())
}
