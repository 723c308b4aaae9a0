package scorer

import (
	"math"
	"strings"
	"testing"
)

func TestScoreWithinBounds(t *testing.T) {
	s := NewKeywordScorer()
	responses := []string{
		"",
		"ok",
		"algorithm training model data",
		strings.Repeat("algorithm training model data bias fairness ", 30),
	}
	concepts := append(s.Concepts(), "unknown_concept", "")

	for _, concept := range concepts {
		for _, response := range responses {
			score := s.Score(response, concept)
			if score < 0 || score > 100 {
				t.Errorf("Score(%q, %q) = %v, out of [0,100]", response, concept, score)
			}
		}
	}
}

func TestScoreUnknownConceptLengthOnly(t *testing.T) {
	s := NewKeywordScorer()
	tests := []struct {
		words int
	}{
		{1},
		{10},
		{25},
		{50},
		{120},
	}

	for _, tt := range tests {
		response := strings.TrimSpace(strings.Repeat("word ", tt.words))
		got := s.Score(response, "quantum_computing")
		want := math.Min(float64(tt.words)/50, 1) * 40
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Score(%d words, unknown) = %v, want %v", tt.words, got, want)
		}
	}
}

func TestScoreAllKeywordsSaturates(t *testing.T) {
	s := NewKeywordScorer()
	got := s.Score("The algorithm uses training data to build a model", "machine_learning")
	if got != 100 {
		t.Errorf("Score = %v, want 100", got)
	}
}

func TestScoreShortResponseNoKeywords(t *testing.T) {
	s := NewKeywordScorer()
	got := s.Score("ok", "ai_ethics")
	if math.Abs(got-0.8) > 1e-9 {
		t.Errorf("Score = %v, want 0.8", got)
	}
}

func TestScoreCaseInsensitiveSubstring(t *testing.T) {
	s := NewKeywordScorer()
	// "Algorithmic" matches "algorithm" as a substring regardless of case
	withKeyword := s.Score("Algorithmic approaches", "machine_learning")
	without := s.Score("Heuristic approaches", "machine_learning")
	if withKeyword <= without {
		t.Errorf("expected keyword match to raise score: with=%v without=%v", withKeyword, without)
	}
}

func TestScoreMonotonicInKeywords(t *testing.T) {
	s := NewKeywordScorer()
	base := "This is a short answer about the topic"
	score := s.Score(base, "neural_networks")
	for _, keyword := range []string{"neuron", "layer", "activation", "weights"} {
		base = base + " " + keyword
		next := s.Score(base, "neural_networks")
		if next < score {
			t.Errorf("score decreased after adding %q: %v -> %v", keyword, score, next)
		}
		score = next
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := NewKeywordScorer()
	response := "training data drives the model"
	first := s.Score(response, "machine_learning")
	second := s.Score(response, "machine_learning")
	if first != second {
		t.Errorf("Score not deterministic: %v != %v", first, second)
	}
}
