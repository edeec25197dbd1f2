package analytics

import (
	"math"
	"testing"

	"MarketIntel/internal/domain/errs"
)

const eps = 1e-9

func TestSimilarityMatrixSymmetricWithUnitDiagonal(t *testing.T) {
	vecs := [][]float64{
		{1, 0, 0},
		{0.5, 0.5, 0},
		{-1, 0.2, 0.3},
		{0.1, 0.9, -0.4},
	}
	m, err := SimilarityMatrix(vecs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m) != len(vecs) {
		t.Fatalf("expected %d rows, got %d", len(vecs), len(m))
	}
	for i := range m {
		if m[i][i] != 1 {
			t.Fatalf("diagonal %d is %v", i, m[i][i])
		}
		for j := range m[i] {
			if m[i][j] != m[j][i] {
				t.Fatalf("matrix not symmetric at %d,%d", i, j)
			}
			if m[i][j] < -1 || m[i][j] > 1 {
				t.Fatalf("value out of range at %d,%d: %v", i, j, m[i][j])
			}
		}
	}
}

func TestSimilarityMatrixKnownValues(t *testing.T) {
	m, err := SimilarityMatrix([][]float64{{1, 0}, {0, 1}, {1, 1}, {-2, 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(m[0][1]) > eps {
		t.Fatalf("orthogonal vectors should be 0, got %v", m[0][1])
	}
	if math.Abs(m[0][2]-1/math.Sqrt2) > eps {
		t.Fatalf("expected 1/sqrt2, got %v", m[0][2])
	}
	if math.Abs(m[0][3]+1) > eps {
		t.Fatalf("opposite vectors should be -1, got %v", m[0][3])
	}
}

func TestSimilarityMatrixSingleVector(t *testing.T) {
	m, err := SimilarityMatrix([][]float64{{3, 4}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m) != 1 || m[0][0] != 1 {
		t.Fatalf("unexpected matrix %v", m)
	}
}

func TestSimilarityMatrixDegenerate(t *testing.T) {
	cases := map[string][][]float64{
		"empty":      {},
		"zero norm":  {{1, 2}, {0, 0}},
		"mixed dims": {{1, 2}, {1, 2, 3}},
		"no dims":    {{}, {}},
	}
	for name, vecs := range cases {
		if _, err := SimilarityMatrix(vecs); !errs.Is(err, errs.KindDegenerateInput) {
			t.Fatalf("%s: expected degenerate input, got %v", name, err)
		}
	}
}

func TestPairwiseSimilarity(t *testing.T) {
	s, err := PairwiseSimilarity([]float64{2, 0}, []float64{5, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(s-1) > eps {
		t.Fatalf("expected 1, got %v", s)
	}
	if _, err := PairwiseSimilarity([]float64{0, 0}, []float64{1, 0}); !errs.Is(err, errs.KindDegenerateInput) {
		t.Fatalf("expected degenerate input, got %v", err)
	}
}

func TestCentroid(t *testing.T) {
	c, err := Centroid([][]float64{{1, 0}, {0, 1}, {2, 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(c[0]-1) > eps || math.Abs(c[1]-1) > eps {
		t.Fatalf("unexpected centroid %v", c)
	}
	if _, err := Centroid(nil); !errs.Is(err, errs.KindDegenerateInput) {
		t.Fatalf("expected degenerate input, got %v", err)
	}
}
