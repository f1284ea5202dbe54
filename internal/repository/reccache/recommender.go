package reccache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinema/internal/db"
	"github.com/kailas-cloud/cinema/internal/domain"
	"github.com/kailas-cloud/cinema/internal/domain/recommendation"
)

var cacheKeyPrefix = domain.KeyPrefix + "rec:"

// store is the consumer interface for the result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedRecommender caches similar-movie lists in a key-value store.
// Keys are scoped by the artifact fingerprint, so a new data set never reads old entries.
type CachedRecommender struct {
	inner       domain.Recommender
	store       store
	fingerprint string
	ttl         time.Duration
	cacheTotal  *prometheus.CounterVec
	logger      *zap.Logger
}

var _ domain.Recommender = (*CachedRecommender)(nil)

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner domain.Recommender,
	s store,
	fingerprint string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedRecommender {
	if len(fingerprint) > 16 {
		fingerprint = fingerprint[:16]
	}
	return &CachedRecommender{
		inner:       inner,
		store:       s,
		fingerprint: fingerprint,
		ttl:         ttl,
		cacheTotal:  cacheTotal,
		logger:      logger,
	}
}

// cachedNeighbor is the stored form of recommendation.Neighbor.
type cachedNeighbor struct {
	Title      string  `json:"t"`
	Rating     float64 `json:"r"`
	Genre      string  `json:"g"`
	Similarity float64 `json:"s"`
}

// Recommend returns cached neighbors or asks the inner recommender.
// Inner errors, including unknown titles, are never cached.
func (c *CachedRecommender) Recommend(ctx context.Context, title string) ([]recommendation.Neighbor, error) {
	key := c.cacheKey(title)

	if res, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return res, nil
	}

	c.incCache("miss")

	res, err := c.inner.Recommend(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	c.putToCache(ctx, key, res)
	return res, nil
}

// TopRated is not cached: it is identical for every caller and cheap in memory.
func (c *CachedRecommender) TopRated(ctx context.Context) ([]recommendation.RankedItem, error) {
	res, err := c.inner.TopRated(ctx)
	if err != nil {
		return nil, fmt.Errorf("top rated: %w", err)
	}
	return res, nil
}

func (c *CachedRecommender) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedRecommender) cacheKey(title string) string {
	h := sha256.Sum256([]byte(title))
	return cacheKeyPrefix + c.fingerprint + ":" + hex.EncodeToString(h[:])
}

func (c *CachedRecommender) getFromCache(ctx context.Context, key string) ([]recommendation.Neighbor, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached recommendations", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var stored []cachedNeighbor
	if err := json.Unmarshal(data, &stored); err != nil {
		c.logger.Warn("Failed to parse cached recommendations", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	out := make([]recommendation.Neighbor, len(stored))
	for i, s := range stored {
		out[i] = recommendation.NewNeighbor(s.Title, s.Rating, s.Genre, s.Similarity)
	}
	return out, true
}

func (c *CachedRecommender) putToCache(ctx context.Context, key string, res []recommendation.Neighbor) {
	stored := make([]cachedNeighbor, len(res))
	for i := range res {
		stored[i] = cachedNeighbor{
			Title:      res[i].Title(),
			Rating:     res[i].Rating(),
			Genre:      res[i].Genre(),
			Similarity: res[i].Similarity(),
		}
	}

	data, err := json.Marshal(stored)
	if err != nil {
		c.logger.Warn("Failed to encode recommendations", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache recommendations", zap.String("key", key), zap.Error(err))
	}
}
