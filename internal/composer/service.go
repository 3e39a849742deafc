package composer

import (
	"context"
	"fmt"
	"time"

	"github.com/sayeedajmal/saudimart-core/pkg/enums"
	"github.com/sayeedajmal/saudimart-core/pkg/logger"
	"github.com/sayeedajmal/saudimart-core/pkg/metrics"
)

// CacheInvalidator drops a cached product aggregate after its graph changed.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, productID string) error
}

// Service wraps the saga with observability and cache upkeep.
type Service struct {
	saga    *Saga
	log     *logger.Logger
	metrics *metrics.CompositionMetrics
	cache   CacheInvalidator
}

// NewService builds the composition service. Cache may be nil when no cache
// is configured.
func NewService(b Backend, log *logger.Logger, m *metrics.CompositionMetrics, cache CacheInvalidator) *Service {
	return &Service{
		saga:    NewSaga(b),
		log:     log,
		metrics: m,
		cache:   cache,
	}
}

// Compose runs one composition, records its metrics, and invalidates the
// cached aggregate for the touched product.
func (s *Service) Compose(ctx context.Context, draft ProductDraft) (*Result, error) {
	mode := draft.Mode()
	start := time.Now()

	result, err := s.saga.Compose(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveDuration(mode, time.Since(start))
	s.metrics.IncOutcome(mode, result.Outcome)
	for _, sub := range result.FailedSubResults() {
		s.metrics.IncSubEntityFailure(sub.EntityType)
	}

	if result.ProductID != "" {
		ctx = s.log.WithProductID(ctx, result.ProductID)
	}
	switch result.Outcome {
	case enums.CompositionOutcomeFullSuccess:
		s.log.Info(ctx, fmt.Sprintf("composition (%s) saved product %s with %d sub-entities",
			mode, draft.SKU, len(result.SubResults)))
	case enums.CompositionOutcomePartialSuccess:
		s.log.Warn(ctx, fmt.Sprintf("composition (%s) saved product %s but %d of %d sub-entities failed",
			mode, draft.SKU, len(result.FailedSubResults()), len(result.SubResults)))
	case enums.CompositionOutcomeTotalFailure:
		s.log.Error(ctx, fmt.Sprintf("composition (%s) failed for product %s", mode, draft.SKU), result.ProductErr)
	}

	if s.cache != nil && result.ProductID != "" {
		if err := s.cache.Invalidate(ctx, result.ProductID); err != nil {
			s.log.Warn(ctx, fmt.Sprintf("stale product cache entry for %s: %v", result.ProductID, err))
		}
	}

	return result, nil
}
