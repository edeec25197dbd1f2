package analytics

import (
	"math"
	"testing"

	"MarketIntel/internal/domain/models"
)

func TestScoreMention(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"Great product, best support", 1},
		{"terrible and disappointing", -1},
		{"good good good bad", 0},
		{"GOOD service but poor docs and bad pricing", -1.0 / 3},
		{"nothing to see here", 0},
		{"great!", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ScoreMention(tt.text); math.Abs(got-tt.want) > eps {
			t.Fatalf("%q: expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestScoreMentionsMean(t *testing.T) {
	s := ScoreMentions([]string{"excellent value", "worst purchase"})
	if s.MentionCount != 2 {
		t.Fatalf("expected 2 mentions, got %d", s.MentionCount)
	}
	if len(s.MentionScores) != 2 || s.MentionScores[0] != 1 || s.MentionScores[1] != -1 {
		t.Fatalf("unexpected per mention scores %v", s.MentionScores)
	}
	if s.Score != 0 {
		t.Fatalf("expected 0, got %v", s.Score)
	}
}

func TestScoreMentionsEmpty(t *testing.T) {
	s := ScoreMentions(nil)
	if s.Score != 0 || s.MentionCount != 0 || len(s.MentionScores) != 0 {
		t.Fatalf("unexpected %+v", s)
	}
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name       string
		uniqueness float64
		sentiment  float64
		want       []string
	}{
		{"both", 0.1, -0.5, []string{RecommendDifferentiate, RecommendSatisfaction}},
		{"differentiate only", 0.29, 0, []string{RecommendDifferentiate}},
		{"satisfaction only", 0.8, -0.01, []string{RecommendSatisfaction}},
		{"none", 0.3, 0, []string{}},
	}
	for _, tt := range tests {
		got := Recommend(models.MarketPosition{UniquenessScore: tt.uniqueness}, tt.sentiment)
		if got == nil {
			t.Fatalf("%s: expected non-nil slice", tt.name)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, got)
			}
		}
	}
}
