package ingestion

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedding model is not provided.
	ErrEmbedderRequired = errors.New("embedding model required")

	// ErrStoreRequired is returned when an embedding store is not provided.
	ErrStoreRequired = errors.New("embedding store required")
)
