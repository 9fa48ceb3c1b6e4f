// Package tmdb provides an HTTP client for The Movie Database v3 API.
//
// # Overview
//
// The client covers the three read-only endpoints the movie browser needs:
//
//   - GET /movie/upcoming: upcoming releases, server-ordered
//   - GET /genre/movie/list?language=en: the genre catalog
//   - GET /movie/{id}: the full detail record for one movie
//
// Every request carries the api_key query parameter.
//
// # Normalization Boundary
//
// Collection fields that are missing, null or not JSON arrays are decoded as
// empty, non-nil slices rather than errors. This is the single place where
// payload shapes are defended against, so the state reducers can assume
// well-formed input.
//
// # Error Handling
//
//   - Network errors: wrapped as "execute request: ..."
//   - HTTP 404: wraps ErrNotFound
//   - Other HTTP errors: "api <path> returned status <n>", with the TMDB
//     status_message appended when the body carries one
//   - Invalid JSON: wrapped as "decode response: ..."
//
// # Rate Limiting
//
// Options.RequestsPerSecond installs a token bucket (golang.org/x/time/rate)
// in front of every request. Waiting honours the request context.
//
// # Usage Example
//
//	client, err := tmdb.NewClient(tmdb.Options{APIKey: key})
//	if err != nil {
//		return err
//	}
//	movies, err := client.FetchUpcoming(ctx)
package tmdb
