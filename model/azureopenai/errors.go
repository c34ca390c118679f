package azureopenai

import "errors"

var (
	// ErrNoChoices indicates the service returned a response without any
	// completion choices.
	ErrNoChoices = errors.New("no choices in response")

	// ErrEmptyEmbedding indicates the service returned no embedding data
	// for a non-empty input.
	ErrEmptyEmbedding = errors.New("no embedding data in response")
)
