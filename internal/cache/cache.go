package cache

import (
	"context"

	"github.com/xaenox/concept-analysis/internal/models"
)

// Cache stores computed analysis results keyed by the pipeline's cache key.
// Get returns (nil, nil) on a miss. Entries are written once and never
// mutated afterwards.
type Cache interface {
	Get(ctx context.Context, key string) (*models.AnalysisResult, error)
	Put(ctx context.Context, key string, result *models.AnalysisResult) error
	Close() error
}
