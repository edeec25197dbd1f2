package repository

import (
	"context"

	"MarketIntel/internal/domain/models"
)

// CompetitorFilter narrows Find. Zero value returns every competitor.
type CompetitorFilter struct {
	IDs        []string
	ExcludeIDs []string
	Limit      int
	Offset     int
}

// CompetitorStore is the document store for competitor records.
type CompetitorStore interface {
	FindOne(ctx context.Context, id string) (models.Competitor, bool, error)
	Find(ctx context.Context, filter CompetitorFilter) ([]models.Competitor, error)
	Insert(ctx context.Context, c models.Competitor) error
	Update(ctx context.Context, c models.Competitor) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Health(ctx context.Context) error
}

// TrendStore holds market trends. The analysis core only reads them.
type TrendStore interface {
	ListTrends(ctx context.Context) ([]models.MarketTrend, error)
	UpsertTrends(ctx context.Context, trends []models.MarketTrend) error
}

// MentionStore persists and serves competitor mentions.
type MentionStore interface {
	Mentions(ctx context.Context, competitorID string, limit int) ([]models.Mention, error)
	StoreMentions(ctx context.Context, mentions []models.Mention) error
	Health(ctx context.Context) error
}

// ReportStore archives batch analysis records.
type ReportStore interface {
	SaveReport(ctx context.Context, r models.AnalysisRecord) error
}

// Publisher ships mentions and analysis records to the event bus.
type Publisher interface {
	PublishMentions(ctx context.Context, mentions []models.Mention) error
	PublishReport(ctx context.Context, r models.AnalysisRecord) error
	Close() error
}

type Metrics interface {
	RecordMessageSent(backend, kind string)
	RecordError(kind string)
	RecordCorpusSize(op string, n int)
	RecordLatency(op string, seconds float64)
}
