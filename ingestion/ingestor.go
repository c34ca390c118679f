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

package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/document"
	"github.com/poiesic/llmkit/model"
	"github.com/poiesic/llmkit/store"
)

// defaultBatchSize matches the batch cap of the hosted embedding APIs.
const defaultBatchSize = 16

// Ingestor splits documents into segments, embeds them, and writes them to
// an embedding store.
type Ingestor struct {
	embedder  model.EmbeddingModel
	store     store.EmbeddingStore
	splitter  document.Splitter
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(in *Ingestor) error {
		if size < 1 {
			size = 1
		}
		if in.pool != nil {
			in.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		in.pool = pool
		return nil
	}
}

// WithBatchSize sets how many segments are embedded per request.
// Default: 16.
func WithBatchSize(size int) Option {
	return func(in *Ingestor) error {
		if size < 1 {
			size = 1
		}
		in.batchSize = size
		return nil
	}
}

// WithSplitter sets the document splitter.
// Default is document.NewRecursiveSplitter().
func WithSplitter(splitter document.Splitter) Option {
	return func(in *Ingestor) error {
		in.splitter = splitter
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(in *Ingestor) error {
		if logger == nil {
			logger = slog.Default()
		}
		in.logger = logger
		return nil
	}
}

// NewIngestor creates an ingestor writing to the given store.
func NewIngestor(embedder model.EmbeddingModel, embeddingStore store.EmbeddingStore, opts ...Option) (*Ingestor, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if embeddingStore == nil {
		return nil, ErrStoreRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	in := &Ingestor{
		embedder:  embedder,
		store:     embeddingStore,
		splitter:  document.NewRecursiveSplitter(),
		pool:      pool,
		batchSize: defaultBatchSize,
		logger:    slog.Default().With("component", "ingestor"),
	}

	for _, opt := range opts {
		if optErr := opt(in); optErr != nil {
			in.Release()
			return nil, optErr
		}
	}
	return in, nil
}

// IngestText ingests a single piece of text with optional metadata.
// Returns the number of segments stored.
func (in *Ingestor) IngestText(ctx context.Context, text string, metadata map[string]string) (int, error) {
	return in.IngestDocuments(ctx, core.NewDocument(text, metadata))
}

// IngestDocuments splits, embeds, and stores the given documents. Segments
// with identical text are stored once. Batches are embedded concurrently;
// the call blocks until every batch is stored and returns the number of
// segments written.
func (in *Ingestor) IngestDocuments(ctx context.Context, docs ...core.Document) (int, error) {
	segments, err := in.collectSegments(docs)
	if err != nil {
		return 0, err
	}
	if len(segments) == 0 {
		return 0, nil
	}

	in.logger.Debug("ingesting segments", "documents", len(docs), "segments", len(segments))

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		errs   []error
		stored int
	)
	for start := 0; start < len(segments); start += in.batchSize {
		end := min(start+in.batchSize, len(segments))
		batch := segments[start:end]

		wg.Add(1)
		submitErr := in.pool.Submit(func() {
			defer wg.Done()
			n, err := in.storeBatch(ctx, batch)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			stored += n
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
		}
	}
	wg.Wait()

	if len(errs) > 0 {
		return stored, errors.Join(errs...)
	}
	return stored, nil
}

// collectSegments splits all documents and drops segments whose text was
// already seen, using content-derived IDs.
func (in *Ingestor) collectSegments(docs []core.Document) ([]core.TextSegment, error) {
	seen := make(map[string]struct{})
	var segments []core.TextSegment
	for _, doc := range docs {
		split, err := in.splitter.Split(doc)
		if err != nil {
			return nil, err
		}
		for _, segment := range split {
			id := core.DeterministicID(segment.Text)
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			segments = append(segments, segment)
		}
	}
	return segments, nil
}

func (in *Ingestor) storeBatch(ctx context.Context, batch []core.TextSegment) (int, error) {
	texts := make([]string, len(batch))
	for i, segment := range batch {
		texts[i] = segment.Text
	}

	embeddings, err := in.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, err
	}

	ids, err := in.store.AddAllSegments(ctx, embeddings, batch)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Release releases the worker pool. The ingestor should not be used after
// calling Release.
func (in *Ingestor) Release() {
	if in.pool != nil {
		in.pool.Release()
	}
}
