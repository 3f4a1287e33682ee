package valuation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	operationEstimate = "estimate"
	operationBatch    = "batch"

	outcomeSuccess = "success"
	outcomeFailure = "failure"

	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"
)

type Metrics struct {
	requests       *prometheus.CounterVec
	batchItems     *prometheus.CounterVec
	estimatedPrice prometheus.Histogram
	cacheLookups   *prometheus.CounterVec
}

// NewMetrics registers the valuation collectors on reg. A nil reg leaves them
// unregistered.
func NewMetrics(reg prometheus.Registerer, namespace string) Metrics {
	factory := promauto.With(reg)

	return Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "valuation",
			Name:      "requests_total",
			Help:      "Valuation calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		batchItems: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "valuation",
			Name:      "batch_items_total",
			Help:      "Batch items by outcome.",
		}, []string{"outcome"}),
		estimatedPrice: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "valuation",
			Name:      "estimated_price",
			Help:      "Distribution of single-item estimated prices.",
			Buckets:   prometheus.ExponentialBuckets(250_000, 2, 12), //nolint:mnd
		}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "valuation",
			Name:      "cache_lookups_total",
			Help:      "Estimate cache lookups by result.",
		}, []string{"result"}),
	}
}
