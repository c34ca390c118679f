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

// Package llmkit is a client library for large language models. It provides
// chat and embedding models for Azure OpenAI, OpenAI, Ollama, and
// OpenAI-compatible servers, streaming response aggregation, embedding
// stores, and an ingestion/retrieval pipeline on top of them.
//
// The Index type in this package is the high-level entry point: it wires an
// embedding model, a store, an ingestor, and a retriever together. The
// subpackages remain usable on their own for finer control.
package llmkit

import (
	"context"
	"log/slog"

	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/ingestion"
	"github.com/poiesic/llmkit/model"
	"github.com/poiesic/llmkit/model/compat"
	"github.com/poiesic/llmkit/retrieval"
	"github.com/poiesic/llmkit/store"
	"github.com/poiesic/llmkit/store/badger"
	"github.com/poiesic/llmkit/store/memory"
)

// Index is a searchable document index: an embedding model, an embedding
// store, and the ingestion and retrieval pipelines over them.
type Index struct {
	embedder  model.EmbeddingModel
	store     store.EmbeddingStore
	ingestor  *ingestion.Ingestor
	retriever *retrieval.Retriever
	logger    *slog.Logger
}

// IndexOption configures an Index.
type IndexOption func(*indexOptions)

type indexOptions struct {
	compatConfig  *compat.Config
	embedder      model.EmbeddingModel
	ingestionOpts []ingestion.Option
	retrievalOpts []retrieval.Option
}

// WithCompatConfig configures the OpenAI-compatible server used for
// embeddings. Ignored when WithEmbeddingModel is set.
func WithCompatConfig(cfg *compat.Config) IndexOption {
	return func(o *indexOptions) {
		o.compatConfig = cfg
	}
}

// WithEmbeddingModel sets the embedding model directly, bypassing the
// compat server configuration.
func WithEmbeddingModel(embedder model.EmbeddingModel) IndexOption {
	return func(o *indexOptions) {
		o.embedder = embedder
	}
}

// WithIngestionOptions passes options through to the ingestor.
func WithIngestionOptions(opts ...ingestion.Option) IndexOption {
	return func(o *indexOptions) {
		o.ingestionOpts = append(o.ingestionOpts, opts...)
	}
}

// WithRetrievalOptions passes options through to the retriever.
func WithRetrievalOptions(opts ...retrieval.Option) IndexOption {
	return func(o *indexOptions) {
		o.retrievalOpts = append(o.retrievalOpts, opts...)
	}
}

// NewIndex creates an index persisted at filePath. An empty filePath keeps
// the index in memory, which is useful for tests and one-off sessions.
func NewIndex(filePath string, opts ...IndexOption) (*Index, error) {
	options := &indexOptions{}
	for _, opt := range opts {
		opt(options)
	}

	embedder := options.embedder
	if embedder == nil {
		cfg := options.compatConfig
		if cfg == nil {
			cfg = compat.DefaultConfig()
		}
		var err error
		embedder, err = compat.NewEmbeddingModel(cfg)
		if err != nil {
			return nil, err
		}
	}

	var embeddingStore store.EmbeddingStore
	if filePath == "" {
		embeddingStore = memory.NewStore()
	} else {
		var err error
		embeddingStore, err = badger.Open(filePath)
		if err != nil {
			return nil, err
		}
	}

	ingestor, err := ingestion.NewIngestor(embedder, embeddingStore, options.ingestionOpts...)
	if err != nil {
		embeddingStore.Close()
		return nil, err
	}

	retriever, err := retrieval.NewRetriever(embedder, embeddingStore, options.retrievalOpts...)
	if err != nil {
		ingestor.Release()
		embeddingStore.Close()
		return nil, err
	}

	return &Index{
		embedder:  embedder,
		store:     embeddingStore,
		ingestor:  ingestor,
		retriever: retriever,
		logger:    slog.Default(),
	}, nil
}

// Ingest splits, embeds, and stores the given documents, returning the
// number of segments written.
func (ix *Index) Ingest(ctx context.Context, docs ...core.Document) (int, error) {
	return ix.ingestor.IngestDocuments(ctx, docs...)
}

// IngestText ingests a single piece of text with optional metadata.
func (ix *Index) IngestText(ctx context.Context, text string, metadata map[string]string) (int, error) {
	return ix.ingestor.IngestText(ctx, text, metadata)
}

// Search returns the stored segments most relevant to the query.
func (ix *Index) Search(ctx context.Context, query string) ([]retrieval.Result, error) {
	return ix.retriever.Retrieve(ctx, query)
}

// Store exposes the underlying embedding store for direct access.
func (ix *Index) Store() store.EmbeddingStore {
	return ix.store
}

// Close releases the ingestion worker pool and closes the store.
func (ix *Index) Close() error {
	ix.ingestor.Release()
	if err := ix.store.Close(); err != nil {
		ix.logger.Error("error closing embedding store", "err", err)
		return err
	}
	return nil
}
