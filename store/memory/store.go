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

// Package memory provides a process-local, in-memory embedding store.
//
// The store keeps every entry in a map guarded by a RWMutex and scans all
// of them on search. Intended for tests, prototyping, and small corpora;
// use store/badger for anything that must survive a restart.
package memory

import (
	"context"
	"os"
	"sort"
	"sync"

	"github.com/poiesic/llmkit/codec"
	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/store"
)

// Store is an in-memory store.EmbeddingStore.
type Store struct {
	mu      sync.RWMutex
	entries map[string]store.Entry
	closed  bool
}

var _ store.EmbeddingStore = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{entries: make(map[string]store.Entry)}
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
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrStorageClosed
	}
	s.entries[id] = store.Entry{ID: id, Vector: embedding}
	return nil
}

// AddSegment stores an embedding with its source segment and returns the
// generated ID.
func (s *Store) AddSegment(_ context.Context, embedding core.Embedding, segment core.TextSegment) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", store.ErrStorageClosed
	}
	id := core.RandomID()
	s.entries[id] = store.Entry{ID: id, Vector: embedding, Text: segment.Text, Metadata: segment.Metadata}
	return id, nil
}

// AddAll stores multiple embeddings and returns their generated IDs in
// input order.
func (s *Store) AddAll(_ context.Context, embeddings []core.Embedding) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, store.ErrStorageClosed
	}
	ids := make([]string, len(embeddings))
	for i, embedding := range embeddings {
		id := core.RandomID()
		s.entries[id] = store.Entry{ID: id, Vector: embedding}
		ids[i] = id
	}
	return ids, nil
}

// AddAllSegments stores multiple embeddings with their segments and returns
// the generated IDs in input order.
func (s *Store) AddAllSegments(_ context.Context, embeddings []core.Embedding, segments []core.TextSegment) ([]string, error) {
	if len(embeddings) != len(segments) {
		return nil, store.ErrCountMismatch
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, store.ErrStorageClosed
	}
	ids := make([]string, len(embeddings))
	for i, embedding := range embeddings {
		id := core.RandomID()
		s.entries[id] = store.Entry{ID: id, Vector: embedding, Text: segments[i].Text, Metadata: segments[i].Metadata}
		ids[i] = id
	}
	return ids, nil
}

// FindRelevant returns up to maxResults entries with relevance score >=
// minScore, ordered by score (highest first).
func (s *Store) FindRelevant(_ context.Context, ref core.Embedding, maxResults int, minScore float64) ([]store.Match, error) {
	if maxResults <= 0 {
		return nil, store.ErrInvalidQuery
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, store.ErrStorageClosed
	}

	matches := make([]store.Match, 0)
	for _, entry := range s.entries {
		cos, err := core.CosineSimilarity(ref, entry.Vector)
		if err != nil {
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

	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches, nil
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close marks the store closed. Subsequent operations return
// store.ErrStorageClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// SaveFile writes the store contents to a JSON file.
func (s *Store) SaveFile(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return store.ErrStorageClosed
	}

	entries := make([]store.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return codec.Write(f, entries)
}

// LoadFile reads store contents from a JSON file written by SaveFile,
// replacing the current entries.
func (s *Store) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var entries []store.Entry
	if err := codec.Read(f, &entries); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrStorageClosed
	}
	s.entries = make(map[string]store.Entry, len(entries))
	for _, entry := range entries {
		s.entries[entry.ID] = entry
	}
	return nil
}
