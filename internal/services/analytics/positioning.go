package analytics

import (
	"sort"

	"MarketIntel/internal/domain/errs"
	"MarketIntel/internal/domain/models"
)

const (
	// SimilarThreshold is the similarity a peer must exceed to be listed as similar.
	SimilarThreshold = 0.7
	// UniqueThreshold is the mean similarity below which a competitor is labelled unique.
	UniqueThreshold = 0.3

	maxSimilar = 2
)

type peer struct {
	idx int
	sim float64
}

// AnalyzePositions derives a market position for every competitor of a batch.
// Batch positions carry no label. Duplicate names keep the last position.
// SimilarCompetitors lists at most two names, most similar first.
func AnalyzePositions(names []string, matrix [][]float64) (map[string]models.MarketPosition, error) {
	if err := checkMatrix("analyze_positions", names, matrix); err != nil {
		return nil, err
	}
	out := make(map[string]models.MarketPosition, len(names))
	for i, name := range names {
		pos, _ := positionAt(i, names, matrix)
		out[name] = pos
	}
	return out, nil
}

// AnalyzeSinglePosition positions names[0] against the remaining competitors
// and always sets the label.
func AnalyzeSinglePosition(names []string, matrix [][]float64) (models.MarketPosition, error) {
	if err := checkMatrix("analyze_single_position", names, matrix); err != nil {
		return models.MarketPosition{}, err
	}
	pos, avg := positionAt(0, names, matrix)
	if avg < UniqueThreshold {
		pos.Label = models.PositionUnique
	} else {
		pos.Label = models.PositionStandard
	}
	return pos, nil
}

// positionAt returns the position of competitor i and its mean similarity to peers.
func positionAt(i int, names []string, matrix [][]float64) (models.MarketPosition, float64) {
	n := len(names)
	if n == 1 {
		return models.MarketPosition{UniquenessScore: 1, SimilarCompetitors: []string{}}, 0
	}

	peers := make([]peer, 0, n-1)
	var sum float64
	for j, s := range matrix[i] {
		if j == i {
			continue
		}
		peers = append(peers, peer{idx: j, sim: s})
		sum += s
	}
	avg := sum / float64(len(peers))

	sort.SliceStable(peers, func(a, b int) bool { return peers[a].sim > peers[b].sim })
	similar := make([]string, 0, maxSimilar)
	for _, p := range peers {
		if len(similar) == maxSimilar || p.sim <= SimilarThreshold {
			break
		}
		similar = append(similar, names[p.idx])
	}

	return models.MarketPosition{
		UniquenessScore:    1 - avg,
		SimilarCompetitors: similar,
	}, avg
}

func checkMatrix(op string, names []string, matrix [][]float64) error {
	n := len(names)
	if n == 0 {
		return errs.New(errs.KindDegenerateInput, op, "no competitors")
	}
	if len(matrix) != n {
		return errs.Newf(errs.KindDegenerateInput, op, "matrix has %d rows for %d competitors", len(matrix), n)
	}
	for i, row := range matrix {
		if len(row) != n {
			return errs.Newf(errs.KindDegenerateInput, op, "matrix row %d has %d columns, want %d", i, len(row), n)
		}
	}
	return nil
}
