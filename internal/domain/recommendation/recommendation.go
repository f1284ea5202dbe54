package recommendation

// Neighbor is a single similar-movie hit.
type Neighbor struct {
	title      string
	rating     float64
	genre      string
	similarity float64
}

// NewNeighbor creates a neighbor result.
func NewNeighbor(title string, rating float64, genre string, similarity float64) Neighbor {
	return Neighbor{title: title, rating: rating, genre: genre, similarity: similarity}
}

// Title returns the neighbor's title.
func (n *Neighbor) Title() string { return n.title }

// Rating returns the neighbor's rating.
func (n *Neighbor) Rating() float64 { return n.rating }

// Genre returns the neighbor's raw genres value.
func (n *Neighbor) Genre() string { return n.genre }

// Similarity returns the raw similarity score to the queried movie.
func (n *Neighbor) Similarity() float64 { return n.similarity }

// MatchPercent returns the similarity as a whole percentage, truncated toward zero.
func (n *Neighbor) MatchPercent() int { return int(n.similarity * 100) }

// RankedItem is a single top-rated entry.
type RankedItem struct {
	title  string
	rating float64
	genre  string
}

// NewRankedItem creates a ranked item.
func NewRankedItem(title string, rating float64, genre string) RankedItem {
	return RankedItem{title: title, rating: rating, genre: genre}
}

// Title returns the item's title.
func (r *RankedItem) Title() string { return r.title }

// Rating returns the item's rating.
func (r *RankedItem) Rating() float64 { return r.rating }

// Genre returns the item's raw genres value.
func (r *RankedItem) Genre() string { return r.genre }

// Stats summarizes the catalog.
type Stats struct {
	TotalItems     int
	AverageRating  float64
	DistinctGenres int
}
