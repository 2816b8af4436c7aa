// Package monitoring exposes Prometheus metrics for the proxy. Metrics
// are diagnostic only; nothing here influences extraction control flow.
package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the proxy's Prometheus collectors.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	fetchDuration   *prometheus.HistogramVec
	strategyHits    *prometheus.CounterVec
	candidates      *prometheus.CounterVec
}

// NewMetrics registers the proxy's collectors with the given registerer.
// Passing nil uses the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	namespace := "vidproxy"

	return &Metrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total API requests served, by endpoint and status code",
			},
			[]string{"endpoint", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "End-to-end API request duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_fetch_duration_seconds",
				Help:      "Upstream HTML fetch duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		strategyHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "strategy_hits_total",
				Help:      "Extraction strategy combinations that produced candidates",
			},
			[]string{"operation", "strategy"},
		),
		candidates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "candidates_total",
				Help:      "Candidate record counts per pipeline stage",
			},
			[]string{"operation", "stage"},
		),
	}
}

// ObserveRequest records one served API request.
func (m *Metrics) ObserveRequest(endpoint string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// ObserveFetch records one upstream fetch.
func (m *Metrics) ObserveFetch(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.fetchDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveExtraction records which strategies fired and the per-stage
// candidate counts for one extraction run.
func (m *Metrics) ObserveExtraction(operation, strategy string, found, unique, complete int) {
	if m == nil {
		return
	}
	if strategy != "" {
		m.strategyHits.WithLabelValues(operation, strategy).Inc()
	}
	m.candidates.WithLabelValues(operation, "found").Add(float64(found))
	m.candidates.WithLabelValues(operation, "unique").Add(float64(unique))
	m.candidates.WithLabelValues(operation, "complete").Add(float64(complete))
}
