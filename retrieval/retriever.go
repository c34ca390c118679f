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

package retrieval

import (
	"context"
	"log/slog"

	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/model"
	"github.com/poiesic/llmkit/store"
)

const (
	defaultMaxResults = 5
	defaultMinScore   = 0.0
)

// Result is a retrieved segment with its relevance to the query.
type Result struct {
	// ID of the stored entry.
	ID string

	// Text of the retrieved segment.
	Text string

	// Score is the relevance of the segment to the query, in [0, 1].
	Score float64

	// Metadata attached to the segment at ingestion time.
	Metadata map[string]string
}

// Retriever embeds queries and searches an embedding store.
type Retriever struct {
	embedder   model.EmbeddingModel
	store      store.EmbeddingStore
	maxResults int
	minScore   float64
	logger     *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithMaxResults caps the number of results per query. Default: 5.
func WithMaxResults(maxResults int) Option {
	return func(r *Retriever) {
		if maxResults > 0 {
			r.maxResults = maxResults
		}
	}
}

// WithMinScore sets the minimum relevance score for results. Default: 0.
func WithMinScore(minScore float64) Option {
	return func(r *Retriever) {
		r.minScore = minScore
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRetriever creates a retriever over the given store. The embedder must
// be the one used to ingest the store's contents.
func NewRetriever(embedder model.EmbeddingModel, embeddingStore store.EmbeddingStore, opts ...Option) (*Retriever, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if embeddingStore == nil {
		return nil, ErrStoreRequired
	}

	r := &Retriever{
		embedder:   embedder,
		store:      embeddingStore,
		maxResults: defaultMaxResults,
		minScore:   defaultMinScore,
		logger:     slog.Default().With("component", "retriever"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Retrieve returns the stored segments most relevant to the query, ordered
// by score (highest first). Entries stored without a segment are skipped.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]Result, error) {
	if core.IsBlank(query) {
		return nil, ErrEmptyQuery
	}

	embedding, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("query embedding failed", "err", err)
		return nil, err
	}

	matches, err := r.store.FindRelevant(ctx, embedding, r.maxResults, r.minScore)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(matches))
	for _, match := range matches {
		if match.Segment == nil {
			continue
		}
		results = append(results, Result{
			ID:       match.ID,
			Text:     match.Segment.Text,
			Score:    match.Score,
			Metadata: match.Segment.Metadata,
		})
	}

	r.logger.Debug("retrieved results", "query", core.FirstChars(query, 60), "count", len(results))
	return results, nil
}
