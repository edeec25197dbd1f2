package analytics

import "strings"

var (
	positiveWords = map[string]struct{}{
		"good": {}, "great": {}, "excellent": {}, "amazing": {}, "best": {},
	}
	negativeWords = map[string]struct{}{
		"bad": {}, "poor": {}, "terrible": {}, "worst": {}, "disappointing": {},
	}
)

// Sentiment is the aggregate lexical score over a set of mentions.
type Sentiment struct {
	Score         float64
	MentionScores []float64
	MentionCount  int
}

// ScoreMention scores one text in [-1, 1] by counting distinct lexicon words.
// Tokens are split on whitespace only, so "great!" does not match "great".
func ScoreMention(text string) float64 {
	seen := make(map[string]struct{})
	var pos, neg int
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		if _, ok := positiveWords[tok]; ok {
			pos++
		} else if _, ok := negativeWords[tok]; ok {
			neg++
		}
	}
	if pos+neg == 0 {
		return 0
	}
	return float64(pos-neg) / float64(pos+neg)
}

// ScoreMentions averages ScoreMention over texts. No texts scores 0.
func ScoreMentions(texts []string) Sentiment {
	out := Sentiment{MentionScores: make([]float64, 0, len(texts)), MentionCount: len(texts)}
	if len(texts) == 0 {
		return out
	}
	var sum float64
	for _, t := range texts {
		s := ScoreMention(t)
		out.MentionScores = append(out.MentionScores, s)
		sum += s
	}
	out.Score = sum / float64(len(texts))
	return out
}
