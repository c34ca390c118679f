package ollama

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/model"
)

// EmbeddingModel is an embedding model served by Ollama.
type EmbeddingModel struct {
	config *Config
	client *client
	logger *slog.Logger
}

var _ model.EmbeddingModel = (*EmbeddingModel)(nil)

// NewEmbeddingModel creates an embedding model from the given options.
// WithModel selects the embedding model, e.g. "nomic-embed-text".
func NewEmbeddingModel(opts ...Option) (*EmbeddingModel, error) {
	cfg := NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &EmbeddingModel{
		config: cfg,
		client: newClient(cfg),
		logger: logger.With("component", "ollama-embedder"),
	}, nil
}

// EmbedText generates an embedding for a single text string.
func (m *EmbeddingModel) EmbedText(ctx context.Context, text string) (core.Embedding, error) {
	embeddings, err := m.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return embeddings[0], nil
}

// EmbedTexts generates embeddings for multiple texts in one request,
// preserving input order.
func (m *EmbeddingModel) EmbedTexts(ctx context.Context, texts []string) ([]core.Embedding, error) {
	m.logger.Debug("generating embeddings", "model", m.config.Model, "count", len(texts))

	req := &embedRequest{Model: m.config.Model, Input: texts}
	var resp embedResponse
	if err := m.client.postJSON(ctx, "/api/embed", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding result mismatch: expected %d, received %d", len(texts), len(resp.Embeddings))
	}

	out := make([]core.Embedding, len(resp.Embeddings))
	for i, vec := range resp.Embeddings {
		out[i] = core.Embedding(vec)
	}
	return out, nil
}
