package reccache

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinema/internal/db"
	"github.com/kailas-cloud/cinema/internal/metrics"
)

// BreakerStore guards a store with a circuit breaker so an unreachable cache
// is skipped instead of costing a network timeout on every request.
type BreakerStore struct {
	inner store
	cb    *gobreaker.CircuitBreaker[[]byte]
}

var _ store = (*BreakerStore)(nil)

// BreakerSettings tunes the circuit breaker.
type BreakerSettings struct {
	MinRequests  uint32        // requests in the window before the breaker may trip
	FailureRatio float64       // trip when failures/requests reaches this ratio
	Interval     time.Duration // closed-state counting window
	Timeout      time.Duration // open-state duration before a trial request
}

// DefaultBreakerSettings returns the production breaker tuning.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MinRequests:  10,
		FailureRatio: 0.6,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
	}
}

// NewBreakerStore wraps inner. A missing key counts as success.
func NewBreakerStore(inner store, settings BreakerSettings, logger *zap.Logger) *BreakerStore {
	const name = "result-cache"
	metrics.CacheBreakerState.Set(stateValue(gobreaker.StateClosed))

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= settings.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Cache circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CacheBreakerState.Set(stateValue(to))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, db.ErrKeyNotFound)
		},
	})

	return &BreakerStore{inner: inner, cb: cb}
}

// Get reads through the breaker.
func (b *BreakerStore) Get(ctx context.Context, key string) ([]byte, error) {
	return b.cb.Execute(func() ([]byte, error) {
		return b.inner.Get(ctx, key)
	})
}

// SetWithTTL writes through the breaker.
func (b *BreakerStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := b.cb.Execute(func() ([]byte, error) {
		return nil, b.inner.SetWithTTL(ctx, key, value, ttl)
	})
	return err
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
