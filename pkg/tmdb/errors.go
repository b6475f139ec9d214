package tmdb

import "errors"

var (
	// ErrNotFound is a 404 from the external API.
	ErrNotFound = errors.New("tmdb: not found")
	// ErrHTTP is any other 4xx response.
	ErrHTTP = errors.New("tmdb: http error")
	// ErrTransport is a network failure or 5xx response.
	ErrTransport = errors.New("tmdb: transport error")
)
