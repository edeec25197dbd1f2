package usecase

import (
	"context"
	"fmt"
	"time"

	"MarketIntel/internal/domain/models"
	domrepo "MarketIntel/internal/domain/repository"
	pkgkafka "MarketIntel/pkg/kafka"

	"github.com/goccy/go-json"
)

// KafkaMentionsHandler consumes mention events and writes them to storage.
type KafkaMentionsHandler struct {
	topic   string
	store   domrepo.MentionStore
	metrics domrepo.Metrics
}

func NewKafkaMentionsHandler(topic string, store domrepo.MentionStore, metrics domrepo.Metrics) *KafkaMentionsHandler {
	return &KafkaMentionsHandler{topic: topic, store: store, metrics: metrics}
}

func (h *KafkaMentionsHandler) Topic() string { return h.topic }

// Handle decodes one mention per message.
func (h *KafkaMentionsHandler) Handle(ctx context.Context, b []byte) error {
	var m models.Mention
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.CompetitorID == "" || m.Text == "" {
		h.metrics.RecordError("consumer_invalid")
		return fmt.Errorf("mention without competitor_id or text")
	}
	if !m.CreatedAt.IsZero() {
		h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(m.CreatedAt).Seconds())
	}

	start := time.Now()
	err := h.store.StoreMentions(ctx, []models.Mention{m})
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordMessageSent(BackendClickHouse, "mention")
	return nil
}

// KafkaReportsHandler consumes analysis records and archives them.
type KafkaReportsHandler struct {
	topic   string
	store   domrepo.ReportStore
	metrics domrepo.Metrics
}

func NewKafkaReportsHandler(topic string, store domrepo.ReportStore, metrics domrepo.Metrics) *KafkaReportsHandler {
	return &KafkaReportsHandler{topic: topic, store: store, metrics: metrics}
}

func (h *KafkaReportsHandler) Topic() string { return h.topic }

func (h *KafkaReportsHandler) Handle(ctx context.Context, b []byte) error {
	var r models.AnalysisRecord
	if err := json.Unmarshal(b, &r); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if r.AnalysisID == "" {
		h.metrics.RecordError("consumer_invalid")
		return fmt.Errorf("analysis record without analysis_id")
	}

	start := time.Now()
	err := h.store.SaveReport(ctx, r)
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordMessageSent(BackendClickHouse, "report")
	return nil
}

var (
	_ pkgkafka.MessageHandler = (*KafkaMentionsHandler)(nil)
	_ pkgkafka.MessageHandler = (*KafkaReportsHandler)(nil)
)
