package similarity

import (
	"fmt"
	"math"
)

// Matrix is a dense, read-only N×N similarity matrix stored row-major.
type Matrix struct {
	n    int
	data []float64
}

// New builds a matrix from rows. Every row must have exactly len(rows) finite entries.
func New(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(row), n)
		}
		data = append(data, row...)
	}
	return FromFlat(n, data)
}

// FromFlat builds an n×n matrix over row-major values.
func FromFlat(n int, values []float64) (*Matrix, error) {
	if n < 0 || len(values) != n*n {
		return nil, fmt.Errorf("got %d values for a %dx%d matrix", len(values), n, n)
	}
	for k, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("cell (%d,%d) = %v is not finite", k/n, k%n, v)
		}
	}
	return &Matrix{n: n, data: values}, nil
}

// Size returns N.
func (m *Matrix) Size() int { return m.n }

// Row returns row i. The returned slice must not be modified.
func (m *Matrix) Row(i int) []float64 { return m.data[i*m.n : (i+1)*m.n] }
