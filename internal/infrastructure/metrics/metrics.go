package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics of the transaction engine.
type Metrics struct {
	// Transaction metrics
	TransactionsProcessed *prometheus.CounterVec
	TransactionErrors     *prometheus.CounterVec
	ParseErrors           prometheus.Counter

	// Account metrics
	AccountsEmitted prometheus.Counter
	FrozenAccounts  prometheus.Counter

	// Run metrics
	Runs        *prometheus.CounterVec
	RunDuration prometheus.Histogram

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
}

// New creates all metrics and registers them with reg.
// A nil reg registers with the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		TransactionsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txengine_transactions_total",
				Help: "Total number of transactions received by type",
			},
			[]string{"type"},
		),
		TransactionErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txengine_transaction_errors_total",
				Help: "Total number of rejected transactions by error kind",
			},
			[]string{"error_kind"},
		),
		ParseErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "txengine_parse_errors_total",
			Help: "Total number of malformed input records",
		}),

		AccountsEmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "txengine_accounts_emitted_total",
			Help: "Total number of final account snapshots emitted",
		}),
		FrozenAccounts: factory.NewCounter(prometheus.CounterOpts{
			Name: "txengine_frozen_accounts_total",
			Help: "Total number of accounts emitted in a frozen state",
		}),

		Runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txengine_runs_total",
				Help: "Total number of engine runs by status",
			},
			[]string{"status"},
		),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "txengine_run_duration_seconds",
			Help:    "Duration of engine runs",
			Buckets: prometheus.DefBuckets,
		}),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),
	}
}
