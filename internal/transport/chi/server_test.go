package chi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinema/internal/domain"
	"github.com/kailas-cloud/cinema/internal/domain/catalog"
	"github.com/kailas-cloud/cinema/internal/domain/recommendation"
	"github.com/kailas-cloud/cinema/internal/domain/similarity"
	healthuc "github.com/kailas-cloud/cinema/internal/usecase/health"
	"github.com/kailas-cloud/cinema/internal/usecase/recommend"
)

// --- Mocks ---

type mockRecommender struct {
	neighbors []recommendation.Neighbor
	ranked    []recommendation.RankedItem
	err       error
	gotTitle  string
}

func (m *mockRecommender) Recommend(_ context.Context, title string) ([]recommendation.Neighbor, error) {
	m.gotTitle = title
	return m.neighbors, m.err
}

func (m *mockRecommender) TopRated(_ context.Context) ([]recommendation.RankedItem, error) {
	return m.ranked, m.err
}

type mockCatalog struct {
	titles []string
	stats  recommendation.Stats
}

func (m *mockCatalog) Titles(_ context.Context) []string            { return m.titles }
func (m *mockCatalog) Stats(_ context.Context) recommendation.Stats { return m.stats }

type mockReady struct{ err error }

func (m *mockReady) Ready(_ context.Context) error { return m.err }

type mockPing struct{ err error }

func (m *mockPing) Ping(_ context.Context) error { return m.err }

func newTestRouter(rec *mockRecommender, opts RouterOptions) http.Handler {
	cat := &mockCatalog{
		titles: []string{"Alpha", "Beta"},
		stats:  recommendation.Stats{TotalItems: 2, AverageRating: 7.5, DistinctGenres: 2},
	}
	health := healthuc.New(&mockReady{}, nil)
	return NewRouter(NewServer(rec, cat, health, zap.NewNop()), opts)
}

func doRequest(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

// --- Tests ---

func TestListTitles(t *testing.T) {
	rr := doRequest(newTestRouter(&mockRecommender{}, RouterOptions{}), http.MethodGet, "/api/v1/movies/titles")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	var resp TitleListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 2 || resp.Items[0] != "Alpha" || resp.Items[1] != "Beta" {
		t.Errorf("items: got %v", resp.Items)
	}
}

func TestRecommend_OK(t *testing.T) {
	rec := &mockRecommender{neighbors: []recommendation.Neighbor{
		recommendation.NewNeighbor("Beta", 8.1, "Drama", 0.876),
		recommendation.NewNeighbor("Gamma", 6.0, "Comedy", 0.5),
	}}
	rr := doRequest(newTestRouter(rec, RouterOptions{}), http.MethodGet, "/api/v1/recommendations?title=Alpha%20One")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	if rec.gotTitle != "Alpha One" {
		t.Errorf("title passed to recommender: got %q", rec.gotTitle)
	}

	var resp RecommendationResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Title != "Alpha One" {
		t.Errorf("title: got %q", resp.Title)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("items: got %d, want 2", len(resp.Items))
	}
	first := resp.Items[0]
	if first.Rank != 1 || first.Title != "Beta" || first.Genre != "Drama" || first.MatchPercent != 87 {
		t.Errorf("first item: got %+v", first)
	}
	if resp.Items[1].Rank != 2 {
		t.Errorf("second rank: got %d", resp.Items[1].Rank)
	}
}

func TestRecommend_MissingTitle(t *testing.T) {
	rr := doRequest(newTestRouter(&mockRecommender{}, RouterOptions{}), http.MethodGet, "/api/v1/recommendations")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if resp := decodeError(t, rr); resp.Code != CodeBadRequest {
		t.Errorf("code: got %s, want %s", resp.Code, CodeBadRequest)
	}
}

func TestRecommend_UnknownTitle(t *testing.T) {
	rec := &mockRecommender{err: fmt.Errorf("%w: %q", domain.ErrTitleNotFound, "Nope")}
	rr := doRequest(newTestRouter(rec, RouterOptions{}), http.MethodGet, "/api/v1/recommendations?title=Nope")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
	if resp := decodeError(t, rr); resp.Code != CodeTitleNotFound {
		t.Errorf("code: got %s, want %s", resp.Code, CodeTitleNotFound)
	}
}

// newEngineRouter wires the router to a real engine over a three-movie catalog.
func newEngineRouter(t *testing.T) http.Handler {
	t.Helper()
	cat, err := catalog.New([]catalog.Item{
		catalog.NewItem("Alpha", 7.0, "Drama"),
		catalog.NewItem("Crouching Tiger, Hidden Dragon", 7.9, "Action, Drama"),
		catalog.NewItem("Beta", 6.5, "Comedy"),
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	matrix, err := similarity.New([][]float64{
		{1, 0.8, 0.1},
		{0.8, 1, 0.3},
		{0.1, 0.3, 1},
	})
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	svc, err := recommend.New(cat, matrix)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return NewRouter(NewServer(svc, svc, healthuc.New(svc, nil), zap.NewNop()), RouterOptions{})
}

func TestRecommend_EmptyTitleIsNotFound(t *testing.T) {
	rr := doRequest(newEngineRouter(t), http.MethodGet, "/api/v1/recommendations?title=")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
	if resp := decodeError(t, rr); resp.Code != CodeTitleNotFound {
		t.Errorf("code: got %s, want %s", resp.Code, CodeTitleNotFound)
	}
}

func TestRecommend_TitleWithCommaIsNotSplit(t *testing.T) {
	rec := &mockRecommender{neighbors: []recommendation.Neighbor{
		recommendation.NewNeighbor("Alpha", 7.0, "Drama", 0.8),
	}}
	target := "/api/v1/recommendations?title=Crouching%20Tiger%2C%20Hidden%20Dragon"
	rr := doRequest(newTestRouter(rec, RouterOptions{}), http.MethodGet, target)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	if rec.gotTitle != "Crouching Tiger, Hidden Dragon" {
		t.Errorf("title passed to recommender: got %q", rec.gotTitle)
	}

	// Same request against the real engine resolves the full title.
	rr = doRequest(newEngineRouter(t), http.MethodGet, target)
	if rr.Code != http.StatusOK {
		t.Fatalf("engine status: got %d, want %d", rr.Code, http.StatusOK)
	}
	var resp RecommendationResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Title != "Crouching Tiger, Hidden Dragon" {
		t.Errorf("title: got %q", resp.Title)
	}
	if len(resp.Items) != 2 || resp.Items[0].Title != "Alpha" {
		t.Errorf("items: got %+v", resp.Items)
	}
}

func TestRecommend_InternalError(t *testing.T) {
	rec := &mockRecommender{err: errors.New("boom")}
	rr := doRequest(newTestRouter(rec, RouterOptions{}), http.MethodGet, "/api/v1/recommendations?title=Alpha")

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	resp := decodeError(t, rr)
	if resp.Code != CodeInternalError {
		t.Errorf("code: got %s, want %s", resp.Code, CodeInternalError)
	}
	if resp.Message == "boom" {
		t.Error("internal error details must not leak to clients")
	}
}

func TestTopRated(t *testing.T) {
	rec := &mockRecommender{ranked: []recommendation.RankedItem{
		recommendation.NewRankedItem("Beta", 9.0, "Drama"),
		recommendation.NewRankedItem("Alpha", 6.0, "Action"),
	}}
	rr := doRequest(newTestRouter(rec, RouterOptions{}), http.MethodGet, "/api/v1/movies/top-rated")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	var resp TopRatedResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("items: got %d, want 2", len(resp.Items))
	}
	if resp.Items[0].Rank != 1 || resp.Items[0].Title != "Beta" || resp.Items[0].Rating != 9.0 {
		t.Errorf("first item: got %+v", resp.Items[0])
	}
}

func TestStats(t *testing.T) {
	rr := doRequest(newTestRouter(&mockRecommender{}, RouterOptions{}), http.MethodGet, "/api/v1/stats")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	var resp StatsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalMovies != 2 || resp.AvgRating != 7.5 || resp.Genres != 2 {
		t.Errorf("stats: got %+v", resp)
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		cacheErr   error
		wantStatus int
		wantBody   string
	}{
		{"healthy", nil, http.StatusOK, string(healthuc.Healthy)},
		{"cache down", errors.New("conn refused"), http.StatusServiceUnavailable, string(healthuc.Degraded)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			health := healthuc.New(&mockReady{}, &mockPing{err: tt.cacheErr})
			srv := NewServer(&mockRecommender{}, &mockCatalog{}, health, zap.NewNop())
			rr := doRequest(NewRouter(srv, RouterOptions{}), http.MethodGet, "/health")

			if rr.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rr.Code, tt.wantStatus)
			}
			var resp HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tt.wantBody {
				t.Errorf("status field: got %q, want %q", resp.Status, tt.wantBody)
			}
			if _, ok := resp.Checks["cache"]; !ok {
				t.Error("expected cache check in response")
			}
		})
	}
}
