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

// Package store provides the embedding storage abstraction.
//
// This package defines the EmbeddingStore interface, which decouples vector
// storage from the rest of the library. Two backends ship with it: a
// process-local in-memory store (store/memory) and a persistent BadgerDB
// store (store/badger). Both can be used interchangeably.
//
// # Usage
//
// Create a persistent store:
//
//	st, err := badger.Open("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
// Use in tests with in-memory storage:
//
//	st := memory.NewStore()
//	defer st.Close()
//
// # Relevance Scores
//
// FindRelevant ranks matches by relevance score, the cosine similarity of
// the query and stored embeddings shifted into [0, 1]: 0 means opposite,
// 0.5 unrelated, 1 identical.
//
// # Thread Safety
//
// All store implementations must be thread-safe and support concurrent
// access from multiple goroutines.
package store
