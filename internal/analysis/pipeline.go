package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xaenox/concept-analysis/internal/cache"
	"github.com/xaenox/concept-analysis/internal/feedback"
	"github.com/xaenox/concept-analysis/internal/models"
	"github.com/xaenox/concept-analysis/internal/scorer"
	"go.uber.org/zap"
)

// Pipeline turns one (response, concept) pair into an AnalysisResult,
// reusing a cached result when the same pair was seen before.
type Pipeline struct {
	scorer scorer.Scorer
	cache  cache.Cache
	logger *zap.Logger
}

func NewPipeline(scorer scorer.Scorer, cache cache.Cache, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		scorer: scorer,
		cache:  cache,
		logger: logger,
	}
}

// CacheKey derives the dedup key from the concept and a content hash of the
// response. The hash is not collision-free: two different responses can map
// to the same key, in which case the later one silently receives the earlier
// result. Known limitation, kept for compatibility.
func CacheKey(response, concept string) string {
	return fmt.Sprintf("%s_%x", concept, feedback.Hash(response))
}

// Analyze returns the cached result for the pair if one exists, including
// its original unique_id. Otherwise it scores the response, selects
// feedback, mints a fresh id, stores and returns the result.
func (p *Pipeline) Analyze(ctx context.Context, response, concept string) (*models.AnalysisResult, error) {
	key := CacheKey(response, concept)

	cached, err := p.cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("cache lookup failed: %w", err)
	}
	if cached != nil {
		p.logger.Debug("Cache hit",
			zap.String("concept", concept),
			zap.String("cache_key", key))
		return cached, nil
	}

	score := p.scorer.Score(response, concept)

	result := &models.AnalysisResult{
		Concept:    concept,
		TotalScore: score,
		Feedback:   feedback.Select(response, score),
		UniqueID:   uuid.New().String(),
	}

	if err := p.cache.Put(ctx, key, result); err != nil {
		return nil, fmt.Errorf("cache store failed: %w", err)
	}

	return result, nil
}
