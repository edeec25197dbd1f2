package analytics

import (
	"math"

	"MarketIntel/internal/domain/errs"
)

// SimilarityMatrix returns the N×N cosine similarity matrix of vectors.
// The result is symmetric with an exact 1 on the diagonal.
func SimilarityMatrix(vectors [][]float64) ([][]float64, error) {
	norms, err := vectorNorms("similarity_matrix", vectors)
	if err != nil {
		return nil, err
	}

	n := len(vectors)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := clampUnit(dot(vectors[i], vectors[j]) / (norms[i] * norms[j]))
			m[i][j] = s
			m[j][i] = s
		}
	}
	return m, nil
}

// PairwiseSimilarity returns the cosine similarity of two vectors.
func PairwiseSimilarity(a, b []float64) (float64, error) {
	norms, err := vectorNorms("pairwise_similarity", [][]float64{a, b})
	if err != nil {
		return 0, err
	}
	return clampUnit(dot(a, b) / (norms[0] * norms[1])), nil
}

// Centroid averages vectors component-wise.
func Centroid(vectors [][]float64) ([]float64, error) {
	if len(vectors) == 0 {
		return nil, errs.New(errs.KindDegenerateInput, "centroid", "no vectors")
	}
	dim := len(vectors[0])
	out := make([]float64, dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, errs.Newf(errs.KindDegenerateInput, "centroid", "vector %d has dimension %d, want %d", i, len(v), dim)
		}
		for k, x := range v {
			out[k] += x
		}
	}
	for k := range out {
		out[k] /= float64(len(vectors))
	}
	return out, nil
}

func vectorNorms(op string, vectors [][]float64) ([]float64, error) {
	if len(vectors) == 0 {
		return nil, errs.New(errs.KindDegenerateInput, op, "no vectors")
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, errs.New(errs.KindDegenerateInput, op, "empty vector")
	}
	norms := make([]float64, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, errs.Newf(errs.KindDegenerateInput, op, "vector %d has dimension %d, want %d", i, len(v), dim)
		}
		n := math.Sqrt(dot(v, v))
		if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, errs.Newf(errs.KindDegenerateInput, op, "vector %d has no usable norm", i)
		}
		norms[i] = n
	}
	return norms, nil
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// float rounding can push |cos| slightly past 1
func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
