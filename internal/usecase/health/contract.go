package health

import "context"

// EngineChecker reports whether the recommendation engine can serve queries.
type EngineChecker interface {
	Ready(ctx context.Context) error
}

// CachePinger checks result cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
