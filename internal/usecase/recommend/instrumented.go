package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinema/internal/domain"
	"github.com/kailas-cloud/cinema/internal/domain/recommendation"
	"github.com/kailas-cloud/cinema/internal/metrics"
)

// InstrumentedRecommender wraps a Recommender with query metrics and logging.
type InstrumentedRecommender struct {
	inner  domain.Recommender
	logger *zap.Logger
}

var _ domain.Recommender = (*InstrumentedRecommender)(nil)

// NewInstrumented wraps inner with observability.
func NewInstrumented(inner domain.Recommender, logger *zap.Logger) *InstrumentedRecommender {
	return &InstrumentedRecommender{inner: inner, logger: logger}
}

// Recommend delegates to the inner recommender and records duration and failures.
func (r *InstrumentedRecommender) Recommend(
	ctx context.Context, title string,
) ([]recommendation.Neighbor, error) {
	start := time.Now()
	res, err := r.inner.Recommend(ctx, title)
	metrics.ObserveQuery("recommend", start, errorType(err))

	if err != nil {
		if errors.Is(err, domain.ErrTitleNotFound) {
			r.logger.Debug("Unknown title requested", zap.String("title", title))
		} else {
			r.logger.Error("Recommend failed", zap.String("title", title), zap.Error(err))
		}
		return nil, fmt.Errorf("recommend: %w", err)
	}

	r.logger.Debug("Recommend completed",
		zap.String("title", title),
		zap.Int("results", len(res)),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}

// TopRated delegates to the inner recommender and records duration and failures.
func (r *InstrumentedRecommender) TopRated(ctx context.Context) ([]recommendation.RankedItem, error) {
	start := time.Now()
	res, err := r.inner.TopRated(ctx)
	metrics.ObserveQuery("top_rated", start, errorType(err))

	if err != nil {
		r.logger.Error("TopRated failed", zap.Error(err))
		return nil, fmt.Errorf("top rated: %w", err)
	}
	return res, nil
}

func errorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrTitleNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
