package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector records draw metrics in Prometheus.
type PrometheusCollector struct {
	draws    *prometheus.CounterVec
	attempts prometheus.Histogram
	duration *prometheus.HistogramVec
}

// Compile-time assertion that PrometheusCollector implements DrawRecorder.
var _ DrawRecorder = (*PrometheusCollector)(nil)

// NewPrometheus creates a collector and registers it with reg.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: metrics namespace (defaults to "secretsanta" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "secretsanta"
	}

	p := &PrometheusCollector{
		draws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "draw",
			Name:      "runs_total",
			Help:      "Total draws by outcome.",
		}, []string{"outcome"}),
		attempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "draw",
			Name:      "attempts",
			Help:      "Permutations drawn before a valid pairing was found.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 50, 100},
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "draw",
			Name:      "duration_seconds",
			Help:      "Draw latency including lock wait and persistence.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{p.draws, p.attempts, p.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// RecordDraw records one draw. Attempts are only observed for successful draws.
func (p *PrometheusCollector) RecordDraw(outcome string, attempts int, duration time.Duration) {
	p.draws.WithLabelValues(outcome).Inc()
	p.duration.WithLabelValues(outcome).Observe(duration.Seconds())
	if outcome == OutcomeOK {
		p.attempts.Observe(float64(attempts))
	}
}
