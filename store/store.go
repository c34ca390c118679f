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

package store

import (
	"context"

	"github.com/poiesic/llmkit/core"
)

// Match is a single result of a relevance search.
type Match struct {
	// ID of the stored entry.
	ID string

	// Score is the relevance of the entry to the query, in [0, 1].
	Score float64

	// Embedding is the stored vector.
	Embedding core.Embedding

	// Segment is the text the embedding was generated from, nil when the
	// entry was stored without one.
	Segment *core.TextSegment
}

// EmbeddingStore stores embeddings with optional source segments and finds
// the entries most relevant to a query embedding.
// Implementations must be thread-safe and support concurrent access.
type EmbeddingStore interface {
	// Add stores an embedding and returns its generated ID.
	Add(ctx context.Context, embedding core.Embedding) (string, error)

	// AddWithID stores an embedding under the given ID, replacing any
	// existing entry with that ID.
	AddWithID(ctx context.Context, id string, embedding core.Embedding) error

	// AddSegment stores an embedding together with the segment it was
	// generated from and returns the generated ID.
	AddSegment(ctx context.Context, embedding core.Embedding, segment core.TextSegment) (string, error)

	// AddAll stores multiple embeddings and returns their generated IDs in
	// input order.
	AddAll(ctx context.Context, embeddings []core.Embedding) ([]string, error)

	// AddAllSegments stores multiple embeddings with their segments and
	// returns the generated IDs in input order. Returns ErrCountMismatch
	// when the slices have different lengths.
	AddAllSegments(ctx context.Context, embeddings []core.Embedding, segments []core.TextSegment) ([]string, error)

	// FindRelevant returns up to maxResults entries with relevance score
	// >= minScore, ordered by score (highest first).
	FindRelevant(ctx context.Context, ref core.Embedding, maxResults int, minScore float64) ([]Match, error)

	// Close closes the store and releases resources.
	Close() error
}
