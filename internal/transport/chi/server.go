package chi

import (
	"context"
	"net/http"

	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinema/internal/domain"
	"github.com/kailas-cloud/cinema/internal/domain/recommendation"
	healthuc "github.com/kailas-cloud/cinema/internal/usecase/health"
)

// CatalogReader exposes catalog-wide read queries.
type CatalogReader interface {
	Titles(ctx context.Context) []string
	Stats(ctx context.Context) recommendation.Stats
}

// Server serves the recommendation HTTP API.
type Server struct {
	recommender domain.Recommender
	catalog     CatalogReader
	health      *healthuc.Service
	logger      *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	recommender domain.Recommender,
	catalog CatalogReader,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		recommender: recommender,
		catalog:     catalog,
		health:      health,
		logger:      logger,
	}
}

// TitleListResponse lists every selectable title.
type TitleListResponse struct {
	Items []string `json:"items"`
}

// NeighborResponse is a single similar movie.
type NeighborResponse struct {
	Rank         int     `json:"rank"`
	Title        string  `json:"title"`
	Rating       float64 `json:"rating"`
	Genre        string  `json:"genre"`
	Similarity   float64 `json:"similarity"`
	MatchPercent int     `json:"match_percent"`
}

// RecommendationResponse is the body of GET /api/v1/recommendations.
type RecommendationResponse struct {
	Title string             `json:"title"`
	Items []NeighborResponse `json:"items"`
}

// RankedItemResponse is a single top-rated movie.
type RankedItemResponse struct {
	Rank   int     `json:"rank"`
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
	Genre  string  `json:"genre"`
}

// TopRatedResponse is the body of GET /api/v1/movies/top-rated.
type TopRatedResponse struct {
	Items []RankedItemResponse `json:"items"`
}

// StatsResponse is the body of GET /api/v1/stats.
type StatsResponse struct {
	TotalMovies int     `json:"total_movies"`
	AvgRating   float64 `json:"avg_rating"`
	Genres      int     `json:"genres"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ListTitles handles GET /api/v1/movies/titles.
func (s *Server) ListTitles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TitleListResponse{Items: s.catalog.Titles(r.Context())})
}

// Recommend handles GET /api/v1/recommendations?title=...
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var title string
	if err := runtime.BindQueryParameter("form", true, true, "title", r.URL.Query(), &title); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "query parameter \"title\" is required")
		return
	}

	neighbors, err := s.recommender.Recommend(r.Context(), title)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]NeighborResponse, len(neighbors))
	for i := range neighbors {
		n := &neighbors[i]
		items[i] = NeighborResponse{
			Rank:         i + 1,
			Title:        n.Title(),
			Rating:       n.Rating(),
			Genre:        n.Genre(),
			Similarity:   n.Similarity(),
			MatchPercent: n.MatchPercent(),
		}
	}
	writeJSON(w, http.StatusOK, RecommendationResponse{Title: title, Items: items})
}

// TopRated handles GET /api/v1/movies/top-rated.
func (s *Server) TopRated(w http.ResponseWriter, r *http.Request) {
	ranked, err := s.recommender.TopRated(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]RankedItemResponse, len(ranked))
	for i := range ranked {
		it := &ranked[i]
		items[i] = RankedItemResponse{
			Rank:   i + 1,
			Title:  it.Title(),
			Rating: it.Rating(),
			Genre:  it.Genre(),
		}
	}
	writeJSON(w, http.StatusOK, TopRatedResponse{Items: items})
}

// Stats handles GET /api/v1/stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	st := s.catalog.Stats(r.Context())
	writeJSON(w, http.StatusOK, StatsResponse{
		TotalMovies: st.TotalItems,
		AvgRating:   st.AverageRating,
		Genres:      st.DistinctGenres,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}
