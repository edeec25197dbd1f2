package models

import "time"

// Analysis types accepted by market analysis. They do not change the computation.
const (
	AnalysisTypeMarketShare = "market_share"
	AnalysisTypeSentiment   = "sentiment"
	AnalysisTypeFull        = "full"
)

// Position labels.
const (
	PositionUnique   = "unique"
	PositionStandard = "standard"
)

// MarketPosition describes how a competitor sits relative to its peers.
type MarketPosition struct {
	UniquenessScore    float64  `json:"uniqueness_score"`
	SimilarCompetitors []string `json:"similar_competitors"`
	Label              string   `json:"market_position,omitempty"`
}

// ShareTrends summarises market share movement over a period.
type ShareTrends struct {
	TrendPeriod string         `json:"trend_period"`
	Trends      map[string]int `json:"trends"`
}

// AnalysisReport is the result of a batch market analysis.
type AnalysisReport struct {
	AnalysisID       string                    `json:"analysis_id"`
	AnalysisDate     time.Time                 `json:"analysis_date"`
	MarketPositions  map[string]MarketPosition `json:"market_positions"`
	ShareTrends      ShareTrends               `json:"share_trends"`
	SimilarityScores [][]float64               `json:"similarity_scores"`
}

// ComparisonResult holds pairwise feature similarity between competitors.
type ComparisonResult struct {
	ComparisonDate    time.Time          `json:"comparison_date"`
	FeatureComparison map[string]float64 `json:"feature_comparison"`
	Competitors       []string           `json:"competitors"`
}

// SentimentResult is the lexical sentiment over a competitor's mentions.
type SentimentResult struct {
	SentimentScore float64   `json:"sentiment_score"`
	MentionCount   int       `json:"mention_count"`
	MentionScores  []float64 `json:"mention_scores,omitempty"`
	AnalysisDate   time.Time `json:"analysis_date"`
}

// CompetitorReport is the single-competitor report.
type CompetitorReport struct {
	CompetitorName    string          `json:"competitor_name"`
	MarketPosition    MarketPosition  `json:"market_position"`
	SentimentAnalysis SentimentResult `json:"sentiment_analysis"`
	ReportDate        time.Time       `json:"report_date"`
	Recommendations   []string        `json:"recommendations"`
}

// AnalysisRecord is the audit row persisted for every batch analysis.
type AnalysisRecord struct {
	AnalysisID    string    `json:"analysis_id"`
	AnalysisDate  time.Time `json:"analysis_date"`
	AnalysisType  string    `json:"analysis_type"`
	CompetitorIDs []string  `json:"competitor_ids"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Payload       []byte    `json:"payload"`
}
