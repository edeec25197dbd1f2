package repository

import (
	"context"

	"MarketIntel/internal/domain/models"
	"MarketIntel/internal/domain/repository"
	pkgkafka "MarketIntel/pkg/kafka"
	applogger "MarketIntel/pkg/logger"
)

// KafkaPublisher implements Publisher for Kafka.
type KafkaPublisher struct {
	producer      pkgkafka.MessageProducer
	mentionsTopic string
	reportsTopic  string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer pkgkafka.MessageProducer, mentionsTopic, reportsTopic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, mentionsTopic: mentionsTopic, reportsTopic: reportsTopic}
}

var (
	_ repository.Publisher = (*KafkaPublisher)(nil)
	_ applogger.Publisher  = (*KafkaPublisher)(nil)
)

// PublishMentions keys each mention by competitor id so a competitor's
// mentions stay on one partition.
func (p *KafkaPublisher) PublishMentions(ctx context.Context, mentions []models.Mention) error {
	if len(mentions) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(mentions))
	for i, m := range mentions {
		msgs[i] = pkgkafka.Message{Key: []byte(m.CompetitorID), Value: m}
	}
	return p.producer.PublishBatch(ctx, p.mentionsTopic, msgs)
}

func (p *KafkaPublisher) PublishReport(ctx context.Context, r models.AnalysisRecord) error {
	return p.producer.Publish(ctx, p.reportsTopic, []byte(r.AnalysisID), r)
}

// PublishMessage ships collected log batches.
func (p *KafkaPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
