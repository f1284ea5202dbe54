package artifact

import (
	"encoding/binary"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/cinema/internal/domain/similarity"
)

func readMatrixJSON(path string) (*similarity.Matrix, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var rows [][]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return buildMatrix(rows)
}

func readMatrixCSV(path string) (*similarity.Matrix, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	var rows [][]float64
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		row := make([]float64, len(rec))
		for j, s := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", len(rows), j, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return buildMatrix(rows)
}

// readMatrixBinary reads row-major little-endian float32 values; N is derived from the length.
func readMatrixBinary(path string) (*similarity.Matrix, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid matrix data: len=%d (not multiple of 4)", len(data))
	}

	count := len(data) / 4
	n := int(math.Sqrt(float64(count)))
	if n*n != count {
		return nil, fmt.Errorf("invalid matrix data: %d values is not a square", count)
	}

	values := make([]float64, count)
	for i := range values {
		values[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:])))
	}
	return similarity.FromFlat(n, values)
}

func buildMatrix(rows [][]float64) (*similarity.Matrix, error) {
	if len(rows) == 0 {
		return nil, errors.New("matrix is empty")
	}
	m, err := similarity.New(rows)
	if err != nil {
		return nil, fmt.Errorf("build matrix: %w", err)
	}
	return m, nil
}
