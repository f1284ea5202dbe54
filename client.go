package cinema

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinema/internal/db"
	dbRedis "github.com/kailas-cloud/cinema/internal/db/redis"
	"github.com/kailas-cloud/cinema/internal/domain"
	"github.com/kailas-cloud/cinema/internal/repository/artifact"
	"github.com/kailas-cloud/cinema/internal/repository/reccache"
	"github.com/kailas-cloud/cinema/internal/usecase/recommend"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCacheTTL         = time.Hour
)

// Client is the embedded recommendation engine.
type Client struct {
	engine      *recommend.Service
	recommender domain.Recommender
	store       db.Store
	fingerprint string
}

// New loads the artifacts and builds the engine. Any load error is returned
// and leaves nothing running.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{cacheTTL: defaultCacheTTL}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	if cfg.catalogPath == "" || cfg.matrixPath == "" {
		return nil, errors.New("cinema: artifact paths required (use WithArtifacts)")
	}

	arts, err := artifact.Load(cfg.catalogPath, cfg.matrixPath)
	if err != nil {
		return nil, fmt.Errorf("cinema: %w", err)
	}

	engine, err := recommend.New(arts.Catalog, arts.Matrix)
	if err != nil {
		return nil, fmt.Errorf("cinema: %w", err)
	}

	c := &Client{
		engine:      engine,
		recommender: engine,
		fingerprint: arts.Fingerprint,
	}

	if cfg.driver != "" {
		store, err := createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("cinema: cache not ready: %w", err)
		}
		c.store = store
		guarded := reccache.NewBreakerStore(store, reccache.DefaultBreakerSettings(), cfg.logger)
		c.recommender = reccache.New(engine, guarded, arts.Fingerprint, cfg.cacheTTL, nil, cfg.logger)
	}

	cfg.logger.Info("cinema client ready",
		zap.Int("movies", arts.Catalog.Len()),
		zap.String("fingerprint", arts.Fingerprint),
		zap.String("cache_driver", cfg.driver),
	)
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("cinema: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("cinema: unknown driver %q", cfg.driver)
	}
}

// Close releases the cache connection, if any.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Fingerprint identifies the loaded artifact pair.
func (c *Client) Fingerprint() string {
	return c.fingerprint
}

// Recommend returns up to 10 movies most similar to title.
// Unknown titles return an error matching ErrNotFound.
func (c *Client) Recommend(ctx context.Context, title string) ([]Neighbor, error) {
	res, err := c.recommender.Recommend(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	out := make([]Neighbor, len(res))
	for i := range res {
		n := &res[i]
		out[i] = Neighbor{
			Title:        n.Title(),
			Rating:       n.Rating(),
			Genre:        n.Genre(),
			Similarity:   n.Similarity(),
			MatchPercent: n.MatchPercent(),
		}
	}
	return out, nil
}

// TopRated returns up to 50 movies ordered by rating, highest first.
func (c *Client) TopRated(ctx context.Context) ([]RankedMovie, error) {
	res, err := c.recommender.TopRated(ctx)
	if err != nil {
		return nil, fmt.Errorf("top rated: %w", err)
	}

	out := make([]RankedMovie, len(res))
	for i := range res {
		r := &res[i]
		out[i] = RankedMovie{Title: r.Title(), Rating: r.Rating(), Genre: r.Genre()}
	}
	return out, nil
}

// Titles returns every catalog title in catalog order.
func (c *Client) Titles(ctx context.Context) []string {
	return c.engine.Titles(ctx)
}

// Stats summarizes the catalog.
func (c *Client) Stats(ctx context.Context) Stats {
	s := c.engine.Stats(ctx)
	return Stats{
		TotalMovies:   s.TotalItems,
		AverageRating: s.AverageRating,
		Genres:        s.DistinctGenres,
	}
}
