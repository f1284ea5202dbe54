package domain

import "errors"

var (
	// ErrTitleNotFound signals that no catalog item carries the requested title.
	ErrTitleNotFound = errors.New("title not found")
	// ErrDimensionMismatch signals that the similarity matrix does not align with the catalog.
	ErrDimensionMismatch = errors.New("similarity matrix dimension mismatch")
	// ErrMalformedArtifact signals an unreadable or structurally invalid input artifact.
	ErrMalformedArtifact = errors.New("malformed artifact")
)
