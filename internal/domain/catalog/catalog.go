package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Item is a single movie row of the catalog.
type Item struct {
	title  string
	rating float64
	genre  string
}

// NewItem creates a catalog item.
func NewItem(title string, rating float64, genre string) Item {
	return Item{title: title, rating: rating, genre: genre}
}

// NewItemWithGenres creates an item from a list-valued genres column.
func NewItemWithGenres(title string, rating float64, genres []string) Item {
	return NewItem(title, rating, strings.Join(genres, ", "))
}

// Title returns the movie title.
func (i *Item) Title() string { return i.title }

// Rating returns the movie rating.
func (i *Item) Rating() float64 { return i.rating }

// Genre returns the raw genres value.
func (i *Item) Genre() string { return i.genre }

// Catalog is an ordered, read-only sequence of items.
// Position is the join key into the similarity matrix.
type Catalog struct {
	items []Item
	index map[string]int
}

// New creates a catalog over a copy of items.
// Duplicate titles resolve to the first occurrence. Ratings must be finite.
func New(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, errors.New("catalog is empty")
	}
	for i := range items {
		if r := items[i].rating; math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, fmt.Errorf("item %d (%q): rating %v is not finite", i, items[i].title, r)
		}
	}
	c := &Catalog{
		items: make([]Item, len(items)),
		index: make(map[string]int, len(items)),
	}
	copy(c.items, items)
	for i := range c.items {
		if _, dup := c.index[c.items[i].title]; !dup {
			c.index[c.items[i].title] = i
		}
	}
	return c, nil
}

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// At returns the item at position i.
func (c *Catalog) At(i int) Item { return c.items[i] }

// IndexOf returns the position of the first item titled title.
func (c *Catalog) IndexOf(title string) (int, bool) {
	i, ok := c.index[title]
	return i, ok
}

// Titles returns every title in catalog order.
func (c *Catalog) Titles() []string {
	out := make([]string, len(c.items))
	for i := range c.items {
		out[i] = c.items[i].title
	}
	return out
}
