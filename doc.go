// Package cinema is an embedded movie recommendation engine over precomputed
// artifacts: a movie catalog and a dense pairwise similarity matrix.
//
//	client, err := cinema.New(
//	    cinema.WithArtifacts("data/movies.parquet", "data/similarity.bin"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	similar, _ := client.Recommend(ctx, "Inception")
//	top, _ := client.TopRated(ctx)
//
// Recommend returns up to 10 movies ordered by similarity, excluding the
// first-ranked entry (normally the movie itself). TopRated returns up to
// 50 movies by rating. Both are pure reads over immutable data and safe
// for concurrent use.
//
// An optional Valkey or Redis cache can be shared between processes:
//
//	cinema.New(
//	    cinema.WithArtifacts(catalogPath, matrixPath),
//	    cinema.WithValkey("localhost:6379", ""),
//	)
package cinema
