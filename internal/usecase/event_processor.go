package usecase

import (
	"context"
	"fmt"
	"time"

	"MarketIntel/internal/domain/models"
	drepo "MarketIntel/internal/domain/repository"
)

// Backends for mention and report writes.
const (
	BackendKafka      = "kafka"
	BackendClickHouse = "clickhouse"
)

// EventProcessor routes mentions and analysis records to the configured backend.
// With kafka the consumer side persists them into ClickHouse later.
type EventProcessor struct {
	pub      drepo.Publisher
	mentions drepo.MentionStore
	reports  drepo.ReportStore
	metrics  drepo.Metrics
	backend  string
}

// NewEventProcessor creates a new EventProcessor instance.
func NewEventProcessor(
	pub drepo.Publisher,
	mentions drepo.MentionStore,
	reports drepo.ReportStore,
	metrics drepo.Metrics,
	backend string,
) *EventProcessor {
	return &EventProcessor{
		pub:      pub,
		mentions: mentions,
		reports:  reports,
		metrics:  metrics,
		backend:  backend,
	}
}

// Backend returns the configured backend name.
func (p *EventProcessor) Backend() string { return p.backend }

// ProcessMentions writes a batch of mentions.
func (p *EventProcessor) ProcessMentions(ctx context.Context, mentions []models.Mention) error {
	if len(mentions) == 0 {
		return nil
	}

	start := time.Now()
	var err error

	switch p.backend {
	case BackendKafka:
		err = p.pub.PublishMentions(ctx, mentions)
	case BackendClickHouse:
		err = p.mentions.StoreMentions(ctx, mentions)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process_mentions")
		return fmt.Errorf("process mentions: %w", err)
	}

	for range mentions {
		p.metrics.RecordMessageSent(p.backend, "mention")
	}
	p.metrics.RecordLatency("process_mentions", time.Since(start).Seconds())
	return nil
}

// ProcessReport archives one analysis record.
func (p *EventProcessor) ProcessReport(ctx context.Context, r models.AnalysisRecord) error {
	start := time.Now()
	var err error

	switch p.backend {
	case BackendKafka:
		err = p.pub.PublishReport(ctx, r)
	case BackendClickHouse:
		err = p.reports.SaveReport(ctx, r)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process_report")
		return fmt.Errorf("process report: %w", err)
	}

	p.metrics.RecordMessageSent(p.backend, "report")
	p.metrics.RecordLatency("process_report", time.Since(start).Seconds())
	return nil
}

// Close closes the publisher if one is configured.
func (p *EventProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
}
