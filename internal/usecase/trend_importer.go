package usecase

import (
	"context"
	"fmt"
	"io"

	"MarketIntel/internal/domain/models"
	drepo "MarketIntel/internal/domain/repository"

	"gopkg.in/yaml.v3"
)

// trendsFile is the operator import format:
//
//	trends:
//	  - trend_name: ai assistants
//	    impact_score: 0.8
//	    date_identified: 2024-05-01T00:00:00Z
type trendsFile struct {
	Trends []models.MarketTrend `yaml:"trends"`
}

// ImportTrends reads market trends from YAML and upserts them.
func ImportTrends(ctx context.Context, store drepo.TrendStore, r io.Reader) (int, error) {
	var f trendsFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return 0, fmt.Errorf("decode trends: %w", err)
	}
	for i, t := range f.Trends {
		if t.TrendName == "" {
			return 0, fmt.Errorf("trend %d: trend_name is required", i)
		}
		if t.ImpactScore < -1 || t.ImpactScore > 1 {
			return 0, fmt.Errorf("trend %q: impact_score %.2f outside [-1, 1]", t.TrendName, t.ImpactScore)
		}
	}
	if err := store.UpsertTrends(ctx, f.Trends); err != nil {
		return 0, err
	}
	return len(f.Trends), nil
}
