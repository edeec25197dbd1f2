package models

import "time"

// Requests for the HTTP endpoints. Defined in domain for reuse by the CLI.

type CompetitorRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Website       string   `json:"website" validate:"required,url"`
	MarketShare   float64  `json:"market_share" validate:"gte=0,lte=100"`
	PriceRange    string   `json:"price_range" validate:"required"`
	CustomerCount string   `json:"customer_count" validate:"max=64"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Features      []string `json:"features"`
	Description   string   `json:"description" validate:"max=5000"`
}

type AnalysisRequest struct {
	CompetitorIDs []string  `json:"competitor_ids" validate:"required,min=1,dive,required"`
	StartDate     time.Time `json:"start_date" validate:"required"`
	EndDate       time.Time `json:"end_date" validate:"required"`
	AnalysisType  string    `json:"analysis_type" default:"full" validate:"oneof=market_share sentiment full"`
}

type ComparisonRequest struct {
	CompetitorIDs []string `json:"competitor_ids" validate:"required,min=1,dive,required"`
}

type MentionsRequest struct {
	Mentions []MentionInput `json:"mentions" validate:"required,min=1,dive"`
}

type MentionInput struct {
	Text   string `json:"text" validate:"required"`
	Source string `json:"source" default:"api"`
}

type ListCompetitorsRequest struct {
	Limit  int `query:"limit" default:"100" validate:"gte=1,lte=1000"`
	Offset int `query:"offset" default:"0" validate:"gte=0"`
}
