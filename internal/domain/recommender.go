package domain

import (
	"context"

	"github.com/kailas-cloud/cinema/internal/domain/recommendation"
)

// Recommender is the query contract shared by the engine and its decorators.
type Recommender interface {
	Recommend(ctx context.Context, title string) ([]recommendation.Neighbor, error)
	TopRated(ctx context.Context) ([]recommendation.RankedItem, error)
}

// KeyPrefix is the namespace for every key this service writes to the shared store.
const KeyPrefix = "cinema:"
