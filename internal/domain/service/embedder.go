package service

import "context"

// Embedder maps texts to fixed-length vectors, index aligned with the input.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}
