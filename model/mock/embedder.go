package mock

import (
	"context"
	"hash/fnv"

	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/model"
)

// DefaultDim is the dimensionality of the deterministic vectors.
const DefaultDim = 384

// Embedder is a test double for model.EmbeddingModel.
// It allows custom behavior injection via function fields.
type Embedder struct {
	// EmbedTextFunc is called by EmbedText if set.
	// If nil, uses default deterministic behavior.
	EmbedTextFunc func(ctx context.Context, text string) (core.Embedding, error)

	// EmbedTextsFunc is called by EmbedTexts if set.
	// If nil, uses default deterministic behavior.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([]core.Embedding, error)

	callCount int
}

var _ model.EmbeddingModel = (*Embedder)(nil)

// NewEmbedder creates a mock embedder with default deterministic behavior.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// EmbedText generates a deterministic embedding based on text hash.
func (m *Embedder) EmbedText(ctx context.Context, text string) (core.Embedding, error) {
	m.callCount++

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return DeterministicVector(text, DefaultDim), nil
}

// EmbedTexts generates deterministic embeddings for multiple texts.
func (m *Embedder) EmbedTexts(ctx context.Context, texts []string) ([]core.Embedding, error) {
	m.callCount++

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	embeddings := make([]core.Embedding, len(texts))
	for i, text := range texts {
		embeddings[i] = DeterministicVector(text, DefaultDim)
	}
	return embeddings, nil
}

// CallCount returns the number of times any method was called.
func (m *Embedder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *Embedder) Reset() {
	m.callCount = 0
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// DeterministicVector creates a deterministic unit embedding from text.
// It seeds an LCG with the FNV hash of the text, so the same text always
// produces the same vector.
func DeterministicVector(text string, dim int) core.Embedding {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make(core.Embedding, dim)
	for i := 0; i < dim; i++ {
		seed = seed*1664525 + 1013904223
		vector[i] = float32(seed%1000) / 1000.0
	}
	return vector.Normalized()
}
