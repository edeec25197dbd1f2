package analytics

import "MarketIntel/internal/domain/models"

const (
	RecommendDifferentiate = "Consider differentiation strategies to stand out in the market"
	RecommendSatisfaction  = "Focus on improving customer satisfaction and brand perception"
)

// Recommend turns a position and a sentiment score into advice, differentiation first.
func Recommend(pos models.MarketPosition, sentiment float64) []string {
	out := []string{}
	if pos.UniquenessScore < UniqueThreshold {
		out = append(out, RecommendDifferentiate)
	}
	if sentiment < 0 {
		out = append(out, RecommendSatisfaction)
	}
	return out
}
