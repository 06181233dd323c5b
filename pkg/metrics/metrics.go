package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UsersActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "swanling_users_active",
			Help: "Number of virtual users currently running",
		},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swanling_requests_total",
			Help: "Total number of requests issued, by request name and outcome",
		},
		[]string{"name", "outcome"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swanling_request_duration_seconds",
			Help:    "Adjusted request duration in seconds, by request name",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"name"},
	)

	SyntheticSamplesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swanling_coordinated_omission_synthetic_total",
			Help: "Total number of synthetic back-filled samples generated, by request name",
		},
		[]string{"name"},
	)

	SlowLoopsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swanling_slow_loops_total",
			Help: "Total number of loop iterations flagged as abnormally slow, by user index",
		},
		[]string{"user"},
	)
)

func init() {
	prometheus.MustRegister(UsersActive)
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(SyntheticSamplesTotal)
	prometheus.MustRegister(SlowLoopsTotal)
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations before recording them to a
// Prometheus histogram.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer, starting now.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the elapsed time to histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}

// ObserveDurationVec records the elapsed time to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	histogram.WithLabelValues(labels...).Observe(time.Since(t.start).Seconds())
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
