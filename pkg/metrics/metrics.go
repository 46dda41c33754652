package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fiscal"

type Metrics struct {
	registry       *prometheus.Registry
	invoices       *prometheus.CounterVec
	gatewayCalls   *prometheus.HistogramVec
	batchItems     *prometheus.HistogramVec
	breakerChanges *prometheus.CounterVec
	jobRuns        *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invoices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_total",
			Help:      "Invoicing outcomes by result code.",
		}, []string{"outcome"}),
		gatewayCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_call_duration_seconds",
			Help:      "Certification gateway call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
		batchItems: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_items",
			Help:      "Number of orders per invoicing run.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100},
		}, []string{"mode"}),
		breakerChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_breaker_state_changes_total",
			Help:      "Circuit breaker state changes.",
		}, []string{"to"}),
		jobRuns: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_run_duration_seconds",
			Help:      "Background job run time by outcome.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 300},
		}, []string{"job", "outcome"}),
	}

	m.registry.MustRegister(
		m.invoices,
		m.gatewayCalls,
		m.batchItems,
		m.breakerChanges,
		m.jobRuns,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) InvoiceProcessed(outcome string) {
	m.invoices.WithLabelValues(outcome).Inc()
}

func (m *Metrics) GatewayCall(operation, outcome string, elapsed time.Duration) {
	m.gatewayCalls.WithLabelValues(operation, outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) BatchProcessed(mode string, items int) {
	m.batchItems.WithLabelValues(mode).Observe(float64(items))
}

func (m *Metrics) BreakerStateChanged(to string) {
	m.breakerChanges.WithLabelValues(to).Inc()
}

func (m *Metrics) JobFinished(name string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}

	m.jobRuns.WithLabelValues(name, outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
