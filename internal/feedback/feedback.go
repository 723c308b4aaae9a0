package feedback

import "hash/fnv"

var templates = map[string][]string{
	"low": {
		"Your response shows initial understanding, but could be more comprehensive.",
		"Try to include more specific details related to the concept.",
	},
	"medium": {
		"Good start! Consider diving deeper into the technical aspects.",
		"You're on the right track. Expand on key principles.",
	},
	"high": {
		"Excellent analysis demonstrating deep conceptual understanding!",
		"Impressive response that covers multiple important aspects.",
	},
}

// Bucket maps a score to its feedback category.
func Bucket(score float64) string {
	switch {
	case score < 40:
		return "low"
	case score < 75:
		return "medium"
	default:
		return "high"
	}
}

// Select picks a feedback string for the score's bucket. The index is
// derived from a hash of the response text, so the same response always
// gets the same string.
func Select(response string, score float64) string {
	candidates := templates[Bucket(score)]
	return candidates[Hash(response)%uint64(len(candidates))]
}

// Hash is the stable content hash used for both feedback selection and
// cache keys (FNV-1a 64).
func Hash(text string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	return h.Sum64()
}
