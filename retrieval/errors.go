package retrieval

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedding model is not provided.
	ErrEmbedderRequired = errors.New("embedding model required")

	// ErrStoreRequired is returned when an embedding store is not provided.
	ErrStoreRequired = errors.New("embedding store required")

	// ErrEmptyQuery is returned when the query is blank.
	ErrEmptyQuery = errors.New("query is empty")
)
