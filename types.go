package cinema

// Neighbor is a movie similar to the queried title.
type Neighbor struct {
	Title        string
	Rating       float64
	Genre        string
	Similarity   float64
	MatchPercent int
}

// RankedMovie is an entry of the top-rated list. Its rank is its 1-based position.
type RankedMovie struct {
	Title  string
	Rating float64
	Genre  string
}

// Stats summarizes the loaded catalog.
type Stats struct {
	TotalMovies   int
	AverageRating float64
	Genres        int
}
