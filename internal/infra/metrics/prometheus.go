package metrics

import (
	"net/http"
	"strconv"
	"time"

	"library-lending/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder publishes engine measurements on its own registry.
type Recorder struct {
	registry          *prometheus.Registry
	requestDuration   *prometheus.HistogramVec
	conflictRetries   *prometheus.CounterVec
	conflictExhausted *prometheus.CounterVec
	ledgerAppended    *prometheus.CounterVec
}

func NewRecorder(cfg config.MetricsConfig) *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "request_duration_seconds",
			Help:      "Command and query latency through the request pipeline.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"request", "kind", "outcome"}),
		conflictRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "conflict_retries_total",
			Help:      "Attempts re-run after a version conflict.",
		}, []string{"operation", "attempt"}),
		conflictExhausted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "conflict_exhausted_total",
			Help:      "Operations that gave up after the last conflicting attempt.",
		}, []string{"operation"}),
		ledgerAppended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "ledger_records_total",
			Help:      "Committed borrow and return records.",
		}, []string{"action"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requestDuration,
		r.conflictRetries,
		r.conflictExhausted,
		r.ledgerAppended,
	)
	return r
}

func (r *Recorder) ObserveRequest(name, kind, outcome string, d time.Duration) {
	r.requestDuration.WithLabelValues(name, kind, outcome).Observe(d.Seconds())
}

func (r *Recorder) ConflictRetried(operation string, attempt int) {
	r.conflictRetries.WithLabelValues(operation, strconv.Itoa(attempt)).Inc()
}

func (r *Recorder) ConflictExhausted(operation string) {
	r.conflictExhausted.WithLabelValues(operation).Inc()
}

func (r *Recorder) LedgerAppended(action string) {
	r.ledgerAppended.WithLabelValues(action).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
