package models

import "time"

// Competitor is a tracked market participant.
type Competitor struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Website       string    `json:"website"`
	MarketShare   float64   `json:"market_share"`
	PriceRange    string    `json:"price_range"`
	CustomerCount string    `json:"customer_count"`
	Strengths     []string  `json:"strengths"`
	Weaknesses    []string  `json:"weaknesses"`
	Features      []string  `json:"features,omitempty"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MarketTrend is an externally identified market movement.
type MarketTrend struct {
	TrendName      string    `json:"trend_name" yaml:"trend_name"`
	ImpactScore    float64   `json:"impact_score" yaml:"impact_score"`
	Description    string    `json:"description" yaml:"description"`
	DateIdentified time.Time `json:"date_identified" yaml:"date_identified"`
	Sources        []string  `json:"sources" yaml:"sources"`
}

// Mention is a piece of public text about a competitor.
type Mention struct {
	CompetitorID string    `json:"competitor_id"`
	Text         string    `json:"text"`
	Source       string    `json:"source,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
