package usecase

import (
	"fmt"
	"strings"

	"MarketIntel/internal/domain/models"
)

// CorpusText is the text embedded for a competitor: its description, or
// "<name> - <price_range> - <strengths>" when the description is empty.
func CorpusText(c models.Competitor) string {
	if c.Description != "" {
		return c.Description
	}
	return fmt.Sprintf("%s - %s - %s", c.Name, c.PriceRange, strings.Join(c.Strengths, ", "))
}

// BuildCorpus returns the corpus texts and names in competitor order.
func BuildCorpus(competitors []models.Competitor) (texts, names []string) {
	texts = make([]string, len(competitors))
	names = make([]string, len(competitors))
	for i, c := range competitors {
		texts[i] = CorpusText(c)
		names[i] = c.Name
	}
	return texts, names
}

// featureTexts is the comparison corpus of one competitor.
func featureTexts(c models.Competitor) []string {
	out := make([]string, 0, len(c.Features)+len(c.Strengths))
	out = append(out, c.Features...)
	out = append(out, c.Strengths...)
	return out
}
