package repository

import (
	"context"
	"fmt"
	"sort"

	"MarketIntel/internal/domain/models"
	"MarketIntel/internal/domain/repository"
	pkgredis "MarketIntel/pkg/redis"

	"github.com/goccy/go-json"
)

// RedisTrendStore keeps market trends in a single hash keyed by trend name.
type RedisTrendStore struct {
	client *pkgredis.Client
}

func NewRedisTrendStore(client *pkgredis.Client) *RedisTrendStore {
	return &RedisTrendStore{client: client}
}

var _ repository.TrendStore = (*RedisTrendStore)(nil)

// ListTrends returns trends newest first, ties broken by name.
func (s *RedisTrendStore) ListTrends(ctx context.Context) ([]models.MarketTrend, error) {
	vals, err := s.client.Redis().HGetAll(ctx, s.client.Key("market_trends")).Result()
	if err != nil {
		return nil, fmt.Errorf("list trends: %w", err)
	}
	out := make([]models.MarketTrend, 0, len(vals))
	for name, raw := range vals {
		var t models.MarketTrend
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			return nil, fmt.Errorf("decode trend %q: %w", name, err)
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateIdentified.Equal(out[j].DateIdentified) {
			return out[i].DateIdentified.After(out[j].DateIdentified)
		}
		return out[i].TrendName < out[j].TrendName
	})
	return out, nil
}

// UpsertTrends writes trends by name, replacing existing entries.
func (s *RedisTrendStore) UpsertTrends(ctx context.Context, trends []models.MarketTrend) error {
	if len(trends) == 0 {
		return nil
	}
	fields := make([]interface{}, 0, len(trends)*2)
	for _, t := range trends {
		if t.TrendName == "" {
			return fmt.Errorf("trend name is required")
		}
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("encode trend %q: %w", t.TrendName, err)
		}
		fields = append(fields, t.TrendName, string(b))
	}
	if err := s.client.Redis().HSet(ctx, s.client.Key("market_trends"), fields...).Err(); err != nil {
		return fmt.Errorf("upsert trends: %w", err)
	}
	return nil
}
