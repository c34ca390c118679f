package azureopenai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/model"
)

// The Azure embeddings endpoint caps batch size; larger inputs are split
// into sequential requests.
const maxEmbeddingBatch = 16

// EmbeddingModel is an embedding model hosted on Azure OpenAI (or the
// OpenAI service).
type EmbeddingModel struct {
	config *Config
	client *client
	logger *slog.Logger
}

var _ model.EmbeddingModel = (*EmbeddingModel)(nil)

// NewEmbeddingModel creates an embedding model from the given options.
// WithDeployment selects the embedding deployment, e.g. text-embedding-ada-002.
func NewEmbeddingModel(opts ...Option) (*EmbeddingModel, error) {
	cfg := NewConfig(opts...)
	if cfg.Deployment == defaultDeployment {
		cfg.Deployment = EmbeddingModelAda002
	}
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
		logger: logger.With("component", "azureopenai-embedder"),
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

// EmbedTexts generates embeddings for multiple texts, preserving input
// order. Inputs beyond the service batch limit are split across requests.
func (m *EmbeddingModel) EmbedTexts(ctx context.Context, texts []string) ([]core.Embedding, error) {
	m.logger.Debug("generating embeddings", "count", len(texts))

	out := make([]core.Embedding, 0, len(texts))
	for start := 0; start < len(texts); start += maxEmbeddingBatch {
		end := min(start+maxEmbeddingBatch, len(texts))

		req := &embeddingRequest{Input: texts[start:end]}
		if !m.config.azure() {
			req.Model = m.config.Deployment
		}

		var resp embeddingResponse
		if err := m.client.postJSON(ctx, "embeddings", req, &resp); err != nil {
			return nil, err
		}
		if len(resp.Data) != end-start {
			return nil, fmt.Errorf("embedding result mismatch: expected %d, received %d", end-start, len(resp.Data))
		}
		for _, data := range resp.Data {
			out = append(out, core.Embedding(data.Embedding))
		}
	}
	return out, nil
}
