package scorer

import (
	"strings"
)

type Scorer interface {
	Score(response, concept string) float64
}

type KeywordScorer struct {
	keywords map[string][]string
}

func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{
		keywords: map[string][]string{
			"machine_learning": {"algorithm", "training", "model", "data"},
			"neural_networks":  {"neuron", "layer", "activation", "weights"},
			"ai_ethics":        {"bias", "fairness", "transparency", "accountability"},
		},
	}
}

// Score combines keyword presence with response length. Keywords match as
// case-insensitive substrings, not whole words. An unknown concept has no
// keywords, so its score depends on length alone.
func (s *KeywordScorer) Score(response, concept string) float64 {
	conceptKeywords := s.keywords[concept]

	lowered := strings.ToLower(response)
	keywordScore := 0
	for _, keyword := range conceptKeywords {
		if strings.Contains(lowered, keyword) {
			keywordScore++
		}
	}

	lengthScore := float64(len(strings.Fields(response))) / 50
	if lengthScore > 1 {
		lengthScore = 1
	}

	total := (float64(keywordScore)*0.6 + lengthScore*0.4) * 100
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	return total
}

// Concepts returns the identifiers with a configured keyword set.
func (s *KeywordScorer) Concepts() []string {
	concepts := make([]string, 0, len(s.keywords))
	for concept := range s.keywords {
		concepts = append(concepts, concept)
	}
	return concepts
}
