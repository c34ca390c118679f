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

package badger

import (
	"context"
	"log/slog"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/store"
)

// Store is a persistent store.EmbeddingStore backed by BadgerDB.
type Store struct {
	backend *Backend
	// ownsBackend marks that Close should close the backend too.
	ownsBackend bool
	logger      *slog.Logger
}

var _ store.EmbeddingStore = (*Store)(nil)

// Open opens a store at the given filesystem path, creating it if needed.
// Closing the store closes the underlying database.
func Open(path string) (*Store, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	s := NewStore(backend)
	s.ownsBackend = true
	return s, nil
}

// NewStore creates a store on an existing backend. The backend stays open
// when the store is closed, so several stores can share one database.
func NewStore(backend *Backend) *Store {
	return &Store{
		backend: backend,
		logger:  slog.Default().With("component", "badger-store"),
	}
}

// Add stores an embedding and returns its generated ID.
func (s *Store) Add(ctx context.Context, embedding core.Embedding) (string, error) {
	id := core.RandomID()
	if err := s.AddWithID(ctx, id, embedding); err != nil {
		return "", err
	}
	return id, nil
}

// AddWithID stores an embedding under the given ID, replacing any existing
// entry with that ID.
func (s *Store) AddWithID(_ context.Context, id string, embedding core.Embedding) error {
	if s.backend.IsClosed() {
		return store.ErrStorageClosed
	}
	return s.backend.WithTx(func(tx *badger.Txn) error {
		entry := store.Entry{ID: id, Vector: embedding}
		if err := tx.Set(makeEntryKey(id), store.MarshalEntry(&entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// AddSegment stores an embedding with its source segment and returns the
// generated ID.
func (s *Store) AddSegment(ctx context.Context, embedding core.Embedding, segment core.TextSegment) (string, error) {
	ids, err := s.AddAllSegments(ctx, []core.Embedding{embedding}, []core.TextSegment{segment})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// AddAll stores multiple embeddings in a single transaction and returns
// their generated IDs in input order.
func (s *Store) AddAll(_ context.Context, embeddings []core.Embedding) ([]string, error) {
	return s.addEntries(embeddings, nil)
}

// AddAllSegments stores multiple embeddings with their segments in a single
// transaction and returns the generated IDs in input order.
func (s *Store) AddAllSegments(_ context.Context, embeddings []core.Embedding, segments []core.TextSegment) ([]string, error) {
	if len(embeddings) != len(segments) {
		return nil, store.ErrCountMismatch
	}
	return s.addEntries(embeddings, segments)
}

// addEntries writes entries in one transaction. segments may be nil.
func (s *Store) addEntries(embeddings []core.Embedding, segments []core.TextSegment) ([]string, error) {
	if s.backend.IsClosed() {
		return nil, store.ErrStorageClosed
	}

	ids := make([]string, len(embeddings))
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for i, embedding := range embeddings {
			id := core.RandomID()
			entry := store.Entry{ID: id, Vector: embedding}
			if segments != nil {
				entry.Text = segments[i].Text
				entry.Metadata = segments[i].Metadata
			}
			if err := tx.Set(makeEntryKey(id), store.MarshalEntry(&entry)); err != nil {
				return err
			}
			ids[i] = id
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("stored entries", "count", len(ids))
	return ids, nil
}

// FindRelevant scans all entries and returns up to maxResults with
// relevance score >= minScore, ordered by score (highest first).
func (s *Store) FindRelevant(_ context.Context, ref core.Embedding, maxResults int, minScore float64) ([]store.Match, error) {
	if maxResults <= 0 {
		return nil, store.ErrInvalidQuery
	}
	if s.backend.IsClosed() {
		return nil, store.ErrStorageClosed
	}

	var matches []store.Match
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = entryScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *store.Entry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = store.UnmarshalEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if entry == nil || len(entry.Vector) == 0 {
				continue
			}

			cos, err := core.CosineSimilarity(ref, entry.Vector)
			if err != nil {
				// Entries of a different dimensionality never match.
				continue
			}
			score := core.RelevanceScore(cos)
			if score < minScore {
				continue
			}
			matches = append(matches, store.Match{
				ID:        entry.ID,
				Score:     score,
				Embedding: entry.Vector,
				Segment:   entry.Segment(),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(matches, func(a, b store.Match) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches, nil
}

// Close closes the store. The underlying database is closed only when the
// store owns it (see Open and NewStore).
func (s *Store) Close() error {
	if s.ownsBackend {
		return s.backend.Close()
	}
	return nil
}
