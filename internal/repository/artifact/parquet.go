package artifact

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/cinema/internal/domain/catalog"
)

// parquetHandle wraps parquet.File + underlying os.File for cleanup.
type parquetHandle struct {
	pf   *parquet.File
	file *os.File
}

func (h *parquetHandle) Close() {
	_ = h.file.Close()
}

func openParquet(path string) (*parquetHandle, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	return &parquetHandle{pf: pf, file: f}, nil
}

// resolveParquetColumns maps leaf column indexes by top-level field name,
// so both scalar and list-typed genres columns resolve.
func resolveParquetColumns(pf *parquet.File) (catalogColumns, error) {
	names := make([]string, 0, len(pf.Schema().Columns()))
	for _, path := range pf.Schema().Columns() {
		if len(path) == 0 {
			names = append(names, "")
			continue
		}
		names = append(names, path[0])
	}
	return resolveCatalogColumns(names)
}

// readCatalogParquet uses the generic row reader: nullable and list columns
// do not reconstruct cleanly into structs.
func readCatalogParquet(path string) ([]catalog.Item, error) {
	h, err := openParquet(path)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	cols, err := resolveParquetColumns(h.pf)
	if err != nil {
		return nil, err
	}
	scale := decimalScale(h.pf, cols.rating)

	var items []catalog.Item
	buf := make([]parquet.Row, 512)
	for _, rg := range h.pf.RowGroups() {
		rows := parquet.NewRowGroupReader(rg)
		for {
			n, readErr := rows.ReadRows(buf)
			for i := 0; i < n; i++ {
				item, err := parquetRowToItem(buf[i], cols, scale)
				if err != nil {
					return nil, fmt.Errorf("row %d: %w", len(items), err)
				}
				items = append(items, item)
			}
			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					break
				}
				return nil, fmt.Errorf("read rows: %w", readErr)
			}
		}
	}
	return items, nil
}

func parquetRowToItem(row parquet.Row, cols catalogColumns, scale int) (catalog.Item, error) {
	var (
		title     string
		rating    float64
		hasTitle  bool
		hasRating bool
		genres    []string
	)

	for _, v := range row {
		switch v.Column() {
		case cols.title:
			if !v.IsNull() {
				title = v.String()
				hasTitle = true
			}
		case cols.rating:
			if v.IsNull() {
				continue
			}
			f, err := numericValue(v, scale)
			if err != nil {
				return catalog.Item{}, err
			}
			rating = f
			hasRating = true
		case cols.genres:
			if !v.IsNull() {
				genres = append(genres, v.String())
			}
		}
	}

	if !hasTitle {
		return catalog.Item{}, errors.New("missing title")
	}
	if !hasRating {
		return catalog.Item{}, errors.New("missing rating")
	}
	return catalog.NewItemWithGenres(title, rating, genres), nil
}

// decimalScale returns the scale of a DECIMAL-annotated leaf column, 0 otherwise.
func decimalScale(pf *parquet.File, column int) int {
	paths := pf.Schema().Columns()
	if column < 0 || column >= len(paths) {
		return 0
	}
	leaf, ok := pf.Schema().Lookup(paths[column]...)
	if !ok {
		return 0
	}
	if lt := leaf.Node.Type().LogicalType(); lt != nil && lt.Decimal != nil {
		return int(lt.Decimal.Scale)
	}
	return 0
}

// numericValue reads a rating; integer values are divided by 10^scale for DECIMAL columns.
func numericValue(v parquet.Value, scale int) (float64, error) {
	switch v.Kind() {
	case parquet.Double:
		return v.Double(), nil
	case parquet.Float:
		return float64(v.Float()), nil
	case parquet.Int32:
		return float64(v.Int32()) / math.Pow10(scale), nil
	case parquet.Int64:
		return float64(v.Int64()) / math.Pow10(scale), nil
	default:
		return 0, fmt.Errorf("rating has unsupported type %s", v.Kind())
	}
}
