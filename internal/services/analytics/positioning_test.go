package analytics

import (
	"math"
	"testing"

	"MarketIntel/internal/domain/errs"
	"MarketIntel/internal/domain/models"
)

func TestAnalyzePositionsSingleCompetitor(t *testing.T) {
	got, err := AnalyzePositions([]string{"Solo"}, [][]float64{{1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pos := got["Solo"]
	if pos.UniquenessScore != 1 {
		t.Fatalf("expected uniqueness 1, got %v", pos.UniquenessScore)
	}
	if pos.SimilarCompetitors == nil || len(pos.SimilarCompetitors) != 0 {
		t.Fatalf("expected empty similar list, got %#v", pos.SimilarCompetitors)
	}
	if pos.Label != "" {
		t.Fatalf("batch positions carry no label, got %q", pos.Label)
	}
}

func TestAnalyzePositionsThresholdAndOrder(t *testing.T) {
	names := []string{"A", "B", "C", "D"}
	m := [][]float64{
		{1, 0.75, 0.95, 0.9},
		{0.75, 1, 0.2, 0.1},
		{0.95, 0.2, 1, 0.1},
		{0.9, 0.1, 0.1, 1},
	}
	got, err := AnalyzePositions(names, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := got["A"]
	if len(a.SimilarCompetitors) != 2 || a.SimilarCompetitors[0] != "C" || a.SimilarCompetitors[1] != "D" {
		t.Fatalf("expected [C D], got %v", a.SimilarCompetitors)
	}
	wantA := 1 - (0.75+0.95+0.9)/3
	if math.Abs(a.UniquenessScore-wantA) > eps {
		t.Fatalf("expected uniqueness %v, got %v", wantA, a.UniquenessScore)
	}

	b := got["B"]
	if len(b.SimilarCompetitors) != 1 || b.SimilarCompetitors[0] != "A" {
		t.Fatalf("expected [A], got %v", b.SimilarCompetitors)
	}

	d := got["D"]
	if len(d.SimilarCompetitors) != 1 || d.SimilarCompetitors[0] != "A" {
		t.Fatalf("expected [A], got %v", d.SimilarCompetitors)
	}
}

func TestAnalyzePositionsExactThresholdExcluded(t *testing.T) {
	got, err := AnalyzePositions([]string{"A", "B"}, [][]float64{{1, 0.7}, {0.7, 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got["A"].SimilarCompetitors) != 0 {
		t.Fatalf("0.7 is not above the threshold, got %v", got["A"].SimilarCompetitors)
	}
}

func TestAnalyzePositionsIdenticalCompetitors(t *testing.T) {
	got, err := AnalyzePositions([]string{"A", "B"}, [][]float64{{1, 1}, {1, 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{"A", "B"} {
		if math.Abs(got[name].UniquenessScore) > eps {
			t.Fatalf("%s: expected uniqueness 0, got %v", name, got[name].UniquenessScore)
		}
	}
	if got["A"].SimilarCompetitors[0] != "B" || got["B"].SimilarCompetitors[0] != "A" {
		t.Fatalf("expected each to list the other, got %v %v", got["A"].SimilarCompetitors, got["B"].SimilarCompetitors)
	}
}

func TestAnalyzeSinglePositionLabels(t *testing.T) {
	names := []string{"Target", "X", "Y"}

	unique, err := AnalyzeSinglePosition(names, [][]float64{
		{1, 0.1, 0.2},
		{0.1, 1, 0.9},
		{0.2, 0.9, 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unique.Label != models.PositionUnique {
		t.Fatalf("expected unique, got %q", unique.Label)
	}

	standard, err := AnalyzeSinglePosition(names, [][]float64{
		{1, 0.3, 0.3},
		{0.3, 1, 0.9},
		{0.3, 0.9, 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if standard.Label != models.PositionStandard {
		t.Fatalf("mean of exactly 0.3 is standard, got %q", standard.Label)
	}
}

func TestAnalyzeSinglePositionAlone(t *testing.T) {
	pos, err := AnalyzeSinglePosition([]string{"Only"}, [][]float64{{1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.UniquenessScore != 1 || pos.Label != models.PositionUnique || len(pos.SimilarCompetitors) != 0 {
		t.Fatalf("unexpected position %+v", pos)
	}
}

func TestAnalyzePositionsShapeMismatch(t *testing.T) {
	if _, err := AnalyzePositions([]string{"A", "B"}, [][]float64{{1}}); !errs.Is(err, errs.KindDegenerateInput) {
		t.Fatalf("expected degenerate input, got %v", err)
	}
	if _, err := AnalyzeSinglePosition(nil, nil); !errs.Is(err, errs.KindDegenerateInput) {
		t.Fatalf("expected degenerate input, got %v", err)
	}
}
