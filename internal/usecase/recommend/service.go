package recommend

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/kailas-cloud/cinema/internal/domain"
	"github.com/kailas-cloud/cinema/internal/domain/catalog"
	"github.com/kailas-cloud/cinema/internal/domain/recommendation"
	"github.com/kailas-cloud/cinema/internal/domain/similarity"
)

const (
	// NeighborLimit is the number of similar movies returned per query.
	NeighborLimit = 10
	// TopRatedLimit is the length of the top-rated list.
	TopRatedLimit = 50
)

// Service answers similar-movie and top-rated queries over a loaded catalog and matrix.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	catalog *catalog.Catalog
	matrix  *similarity.Matrix
}

var _ domain.Recommender = (*Service)(nil)

// New creates the engine. The matrix must be N×N for a catalog of N items.
func New(cat *catalog.Catalog, matrix *similarity.Matrix) (*Service, error) {
	if cat == nil || matrix == nil {
		return nil, errors.New("catalog and matrix are required")
	}
	if matrix.Size() != cat.Len() {
		return nil, fmt.Errorf("%w: matrix is %dx%d, catalog has %d items",
			domain.ErrDimensionMismatch, matrix.Size(), matrix.Size(), cat.Len())
	}
	return &Service{catalog: cat, matrix: matrix}, nil
}

type scored struct {
	index int
	score float64
}

// Recommend returns up to NeighborLimit movies most similar to title.
//
// Entries are ranked by descending similarity with ties kept in catalog order.
// The top-ranked entry is dropped on the assumption that it is the movie itself;
// the exclusion is positional, not by index.
func (s *Service) Recommend(_ context.Context, title string) ([]recommendation.Neighbor, error) {
	idx, ok := s.catalog.IndexOf(title)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrTitleNotFound, title)
	}

	row := s.matrix.Row(idx)
	ranked := make([]scored, len(row))
	for j, v := range row {
		ranked[j] = scored{index: j, score: v}
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	ranked = ranked[1:]
	if len(ranked) > NeighborLimit {
		ranked = ranked[:NeighborLimit]
	}

	out := make([]recommendation.Neighbor, len(ranked))
	for k, r := range ranked {
		it := s.catalog.At(r.index)
		out[k] = recommendation.NewNeighbor(it.Title(), it.Rating(), it.Genre(), r.score)
	}
	return out, nil
}

// TopRated returns up to TopRatedLimit movies by descending rating, ties in catalog order.
func (s *Service) TopRated(_ context.Context) ([]recommendation.RankedItem, error) {
	order := make([]int, s.catalog.Len())
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		ia, ib := s.catalog.At(a), s.catalog.At(b)
		return cmp.Compare(ib.Rating(), ia.Rating())
	})

	if len(order) > TopRatedLimit {
		order = order[:TopRatedLimit]
	}

	out := make([]recommendation.RankedItem, len(order))
	for k, i := range order {
		it := s.catalog.At(i)
		out[k] = recommendation.NewRankedItem(it.Title(), it.Rating(), it.Genre())
	}
	return out, nil
}

// Titles returns every catalog title in catalog order.
func (s *Service) Titles(_ context.Context) []string {
	return s.catalog.Titles()
}

// Stats summarizes the catalog: item count, mean rating and distinct genre values.
func (s *Service) Stats(_ context.Context) recommendation.Stats {
	n := s.catalog.Len()
	genres := make(map[string]struct{})
	var sum float64
	for i := 0; i < n; i++ {
		it := s.catalog.At(i)
		sum += it.Rating()
		genres[it.Genre()] = struct{}{}
	}
	st := recommendation.Stats{TotalItems: n, DistinctGenres: len(genres)}
	if n > 0 {
		st.AverageRating = sum / float64(n)
	}
	return st
}

// Ready reports whether the engine has data to serve.
func (s *Service) Ready(_ context.Context) error {
	if s.catalog.Len() == 0 {
		return fmt.Errorf("catalog is empty")
	}
	return nil
}
