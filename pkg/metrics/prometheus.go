package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	messagesSent *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	corpusSize   *prometheus.HistogramVec
	latency      *prometheus.HistogramVec
}

// New creates a recorder on the default registry. Call it once per process.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates a recorder whose collectors live on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		messagesSent: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketintel_messages_sent_total",
				Help: "Total number of mentions and analysis records written to a backend",
			},
			[]string{"backend", "kind"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketintel_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		corpusSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketintel_corpus_texts",
				Help:    "Texts embedded per analysis operation",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"operation"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketintel_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordMessageSent records a message of kind written to backend.
func (r *Recorder) RecordMessageSent(backend, kind string) {
	r.messagesSent.WithLabelValues(backend, kind).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCorpusSize records how many texts an operation embedded.
func (r *Recorder) RecordCorpusSize(op string, n int) {
	r.corpusSize.WithLabelValues(op).Observe(float64(n))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
