package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	AnalyticsLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "marketintel",
			Subsystem: "analytics",
			Name:      "latency_seconds",
			Help:      "Latency of analysis endpoints",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	AnalyticsErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketintel",
			Subsystem: "analytics",
			Name:      "errors_total",
			Help:      "Errors by analysis endpoint and error kind",
		},
		[]string{"endpoint", "kind"},
	)

	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketintel",
			Subsystem: "analytics",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client limiter",
		},
		[]string{"endpoint"},
	)

	EmbeddingRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketintel",
			Subsystem: "embedding",
			Name:      "requests_total",
			Help:      "Embedding model calls by result (ok, failure, rejected)",
		},
		[]string{"provider", "result"},
	)

	EmbeddingTexts = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "marketintel",
			Subsystem: "embedding",
			Name:      "batch_texts",
			Help:      "Number of texts per embedding call",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		},
	)

	EmbeddingBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "marketintel",
			Subsystem: "embedding",
			Name:      "breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// Register adds the analytics collectors to the default registry once.
func Register() {
	RegisterWith(prometheus.DefaultRegisterer)
}

// RegisterWith adds the analytics collectors to reg once per process.
func RegisterWith(reg prometheus.Registerer) {
	once.Do(func() {
		reg.MustRegister(
			AnalyticsLatency,
			AnalyticsErrors,
			RateLimited,
			EmbeddingRequests,
			EmbeddingTexts,
			EmbeddingBreakerState,
		)
	})
}
