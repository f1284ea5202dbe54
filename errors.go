package cinema

import "github.com/kailas-cloud/cinema/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound          = domain.ErrTitleNotFound
	ErrMalformedArtifact = domain.ErrMalformedArtifact
	ErrDimensionMismatch = domain.ErrDimensionMismatch
)
