package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockEngine struct {
	err error
}

func (m *mockEngine) Ready(_ context.Context) error { return m.err }

type mockCache struct {
	err error
}

func (m *mockCache) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	r := New(&mockEngine{}, &mockCache{}).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["engine"] != CheckOK {
		t.Errorf("expected engine %q, got %q", CheckOK, r.Checks["engine"])
	}
	if r.Checks["cache"] != CheckOK {
		t.Errorf("expected cache %q, got %q", CheckOK, r.Checks["cache"])
	}
}

func TestCheck_CacheError(t *testing.T) {
	r := New(&mockEngine{}, &mockCache{err: errors.New("conn refused")}).Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["cache"] != CheckError {
		t.Errorf("expected cache %q, got %q", CheckError, r.Checks["cache"])
	}
	if r.Checks["engine"] != CheckOK {
		t.Errorf("expected engine %q, got %q", CheckOK, r.Checks["engine"])
	}
}

func TestCheck_EngineError(t *testing.T) {
	r := New(&mockEngine{err: errors.New("empty")}, nil).Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["engine"] != CheckError {
		t.Error("expected engine error")
	}
}

func TestCheck_NoCache(t *testing.T) {
	r := New(&mockEngine{}, nil).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["cache"]; ok {
		t.Error("cache check should be absent when cache is nil")
	}
}
