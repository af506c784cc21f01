package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects pipeline counters and timings.
type Metrics struct {
	JobsProcessed *prometheus.CounterVec
	JobsFailed    *prometheus.CounterVec
	JobRetries    prometheus.Counter
	StageDuration *prometheus.HistogramVec
}

// NewMetrics registers pipeline metrics on a fresh registry and returns
// both. Using a dedicated registry keeps tests independent.
func NewMetrics() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		JobsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "carousel_jobs_processed_total",
			Help: "Jobs completed, by job name and outcome.",
		}, []string{"job", "outcome"}),
		JobsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "carousel_jobs_failed_total",
			Help: "Jobs that exhausted all attempts, by job name.",
		}, []string{"job"}),
		JobRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "carousel_job_retries_total",
			Help: "Redeliveries scheduled after a fatal stage error.",
		}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "carousel_stage_duration_seconds",
			Help:    "Wall time per pipeline stage.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		}, []string{"stage"}),
	}
	return m, reg
}

// ObserveStage records one stage execution.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// Serve exposes the registry on addr/metrics. Blocks until the server exits.
func Serve(addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return http.ListenAndServe(addr, mux)
}
