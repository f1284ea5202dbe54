package reccache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinema/internal/db"
	"github.com/kailas-cloud/cinema/internal/domain/recommendation"
)

type mockRecommender struct {
	neighbors []recommendation.Neighbor
	top       []recommendation.RankedItem
	err       error
	calls     int
	lastTitle string
	topCalls  int
}

func (m *mockRecommender) Recommend(_ context.Context, title string) ([]recommendation.Neighbor, error) {
	m.calls++
	m.lastTitle = title
	return m.neighbors, m.err
}

func (m *mockRecommender) TopRated(_ context.Context) ([]recommendation.RankedItem, error) {
	m.topCalls++
	return m.top, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

// memStore is a map-backed store for round-trip tests.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func newTestCachedRecommender(t *testing.T, inner *mockRecommender, s store) *CachedRecommender {
	t.Helper()
	return New(inner, s, "0123456789abcdef0123", time.Hour, nil, zap.NewNop())
}
