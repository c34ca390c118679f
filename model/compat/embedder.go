// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compat

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/model"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrEmptyEmbedding indicates the server returned no embedding data for a
// non-empty request.
var ErrEmptyEmbedding = errors.New("no embedding data in response")

// EmbeddingModel is an embedding model behind an OpenAI-compatible server.
type EmbeddingModel struct {
	config   *Config
	embedder embeddings.Embedder
	logger   *slog.Logger
}

var _ model.EmbeddingModel = (*EmbeddingModel)(nil)

// NewEmbeddingModel creates an embedding model from the given configuration.
// The config is validated and normalized before use.
func NewEmbeddingModel(cfg *Config) (*EmbeddingModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(cfg.Host),
		openai.WithToken(cfg.APIKey),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &EmbeddingModel{
		config:   cfg,
		embedder: embedder,
		logger:   logger.With("component", "compat-embedder"),
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

// EmbedTexts generates embeddings for multiple texts in a batch.
func (m *EmbeddingModel) EmbedTexts(ctx context.Context, texts []string) ([]core.Embedding, error) {
	m.logger.Debug("generating embeddings", "model", m.config.EmbeddingModel, "count", len(texts))

	vectors, err := m.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		m.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}

	out := make([]core.Embedding, len(vectors))
	for i, vec := range vectors {
		out[i] = core.Embedding(vec)
	}
	return out, nil
}
