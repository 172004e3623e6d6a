package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the prometheus collectors for the credit service.
type Metrics struct {
	LoanDecisions *prometheus.CounterVec
	IngestRows    *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
}

// NewMetrics registers the service collectors on a fresh registry and returns
// them with the /metrics handler.
func NewMetrics() (*Metrics, http.Handler) {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		LoanDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "credit_loan_decisions_total",
			Help: "Loan decisions by entry point and outcome.",
		}, []string{"operation", "outcome"}),
		IngestRows: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "credit_ingest_rows_total",
			Help: "Portfolio ingestion rows by entity and result.",
		}, []string{"entity", "result"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "credit_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}

	return m, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
