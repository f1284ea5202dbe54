package artifact

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/cinema/internal/domain/catalog"
)

// catalogColumns holds header positions of the catalog fields.
type catalogColumns struct {
	title  int
	rating int
	genres int
}

func resolveCatalogColumns(header []string) (catalogColumns, error) {
	cols := catalogColumns{title: -1, rating: -1, genres: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "title":
			cols.title = i
		case "rating":
			cols.rating = i
		case "genres", "genre":
			cols.genres = i
		}
	}
	if cols.title < 0 {
		return cols, errors.New("title column not found")
	}
	if cols.rating < 0 {
		return cols, errors.New("rating column not found")
	}
	return cols, nil
}

func readCatalogCSV(path string) ([]catalog.Item, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := resolveCatalogColumns(header)
	if err != nil {
		return nil, err
	}

	var items []catalog.Item
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		item, err := csvRecordToItem(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func csvRecordToItem(rec []string, cols catalogColumns) (catalog.Item, error) {
	field := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	if cols.title >= len(rec) || cols.rating >= len(rec) {
		return catalog.Item{}, fmt.Errorf("expected at least %d fields, got %d",
			max(cols.title, cols.rating)+1, len(rec))
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(field(cols.rating)), 64)
	if err != nil {
		return catalog.Item{}, fmt.Errorf("parse rating %q: %w", field(cols.rating), err)
	}
	return catalog.NewItem(field(cols.title), rating, field(cols.genres)), nil
}

// catalogRecord is the JSON shape of one catalog row.
type catalogRecord struct {
	Title  *string     `json:"title"`
	Rating *float64    `json:"rating"`
	Genres genresField `json:"genres"`
}

// genresField accepts either a single string or an array of strings.
type genresField struct {
	value string
}

func (g *genresField) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		g.value = s
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("genres must be a string or an array of strings: %w", err)
	}
	g.value = strings.Join(list, ", ")
	return nil
}

func readCatalogJSON(path string) ([]catalog.Item, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var records []catalogRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	items := make([]catalog.Item, len(records))
	for i, rec := range records {
		if rec.Title == nil {
			return nil, fmt.Errorf("record %d: missing title", i)
		}
		if rec.Rating == nil {
			return nil, fmt.Errorf("record %d: missing rating", i)
		}
		items[i] = catalog.NewItem(*rec.Title, *rec.Rating, rec.Genres.value)
	}
	return items, nil
}
