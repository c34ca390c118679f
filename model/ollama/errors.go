package ollama

import "errors"

var (
	// ErrToolsUnsupported indicates a request carried tool specifications,
	// which the native chat API does not accept.
	ErrToolsUnsupported = errors.New("ollama does not support tool use")

	// ErrEmptyEmbedding indicates the server returned no embedding data for
	// a non-empty input.
	ErrEmptyEmbedding = errors.New("no embedding data in response")
)
