// Package artifact loads the precomputed catalog and similarity matrix from disk.
// Any malformed input is reported as domain.ErrMalformedArtifact and must be treated as fatal.
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/cinema/internal/domain"
	"github.com/kailas-cloud/cinema/internal/domain/catalog"
	"github.com/kailas-cloud/cinema/internal/domain/similarity"
)

// Artifacts bundles both inputs after a successful load.
type Artifacts struct {
	Catalog     *catalog.Catalog
	Matrix      *similarity.Matrix
	Fingerprint string
}

// Load reads the catalog and matrix, checks that they align and fingerprints them.
func Load(catalogPath, matrixPath string) (Artifacts, error) {
	cat, err := LoadCatalog(catalogPath)
	if err != nil {
		return Artifacts{}, fmt.Errorf("load catalog: %w", err)
	}

	m, err := LoadMatrix(matrixPath)
	if err != nil {
		return Artifacts{}, fmt.Errorf("load matrix: %w", err)
	}

	if m.Size() != cat.Len() {
		return Artifacts{}, fmt.Errorf("%w: matrix %s is %dx%d, catalog %s has %d items",
			domain.ErrDimensionMismatch, matrixPath, m.Size(), m.Size(), catalogPath, cat.Len())
	}

	fp, err := fingerprint(catalogPath, matrixPath)
	if err != nil {
		return Artifacts{}, err
	}

	return Artifacts{Catalog: cat, Matrix: m, Fingerprint: fp}, nil
}

// LoadCatalog reads a catalog, choosing the decoder by file extension (.csv, .json, .parquet).
func LoadCatalog(path string) (*catalog.Catalog, error) {
	var (
		items []catalog.Item
		err   error
	)
	switch ext(path) {
	case ".csv":
		items, err = readCatalogCSV(path)
	case ".json":
		items, err = readCatalogJSON(path)
	case ".parquet":
		items, err = readCatalogParquet(path)
	default:
		return nil, fmt.Errorf("%w: unsupported catalog format %q", domain.ErrMalformedArtifact, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrMalformedArtifact, path, err)
	}

	cat, err := catalog.New(items)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrMalformedArtifact, path, err)
	}
	return cat, nil
}

// LoadMatrix reads a square similarity matrix (.json, .csv, .bin/.f32).
func LoadMatrix(path string) (*similarity.Matrix, error) {
	var (
		m   *similarity.Matrix
		err error
	)
	switch ext(path) {
	case ".json":
		m, err = readMatrixJSON(path)
	case ".csv":
		m, err = readMatrixCSV(path)
	case ".bin", ".f32":
		m, err = readMatrixBinary(path)
	default:
		return nil, fmt.Errorf("%w: unsupported matrix format %q", domain.ErrMalformedArtifact, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrMalformedArtifact, path, err)
	}
	return m, nil
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// fingerprint hashes both artifact files so cached results never outlive the data they came from.
func fingerprint(paths ...string) (string, error) {
	h := sha256.New()
	for _, p := range paths {
		f, err := os.Open(filepath.Clean(p))
		if err != nil {
			return "", fmt.Errorf("fingerprint %s: %w", p, err)
		}
		_, err = io.Copy(h, f)
		_ = f.Close()
		if err != nil {
			return "", fmt.Errorf("fingerprint %s: %w", p, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
