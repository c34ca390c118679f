package document

import (
	"fmt"
	"strconv"

	"github.com/poiesic/llmkit/core"
	"github.com/tmc/langchaingo/textsplitter"
)

// MetaIndex is the metadata key carrying a segment's position within its
// document.
const MetaIndex = "index"

const (
	defaultChunkSize    = 512
	defaultChunkOverlap = 64
)

// Splitter splits a document into text segments.
type Splitter interface {
	Split(doc core.Document) ([]core.TextSegment, error)
}

// RecursiveSplitter splits on paragraph, line, and word boundaries in that
// order of preference, keeping chunks under a size limit with some overlap
// between neighbors.
type RecursiveSplitter struct {
	inner textsplitter.RecursiveCharacter
}

var _ Splitter = (*RecursiveSplitter)(nil)

// SplitterOption configures a RecursiveSplitter.
type SplitterOption func(*splitterConfig)

type splitterConfig struct {
	chunkSize    int
	chunkOverlap int
}

// WithChunkSize sets the maximum chunk size in characters. Default: 512.
func WithChunkSize(size int) SplitterOption {
	return func(c *splitterConfig) {
		c.chunkSize = size
	}
}

// WithChunkOverlap sets the overlap between neighboring chunks in
// characters. Default: 64.
func WithChunkOverlap(overlap int) SplitterOption {
	return func(c *splitterConfig) {
		c.chunkOverlap = overlap
	}
}

// NewRecursiveSplitter creates a splitter with the given options.
func NewRecursiveSplitter(opts ...SplitterOption) *RecursiveSplitter {
	cfg := &splitterConfig{
		chunkSize:    defaultChunkSize,
		chunkOverlap: defaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &RecursiveSplitter{
		inner: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(cfg.chunkSize),
			textsplitter.WithChunkOverlap(cfg.chunkOverlap),
		),
	}
}

// Split splits the document into segments. Each segment carries the
// document's metadata plus its index within the document.
func (s *RecursiveSplitter) Split(doc core.Document) ([]core.TextSegment, error) {
	chunks, err := s.inner.SplitText(doc.Text)
	if err != nil {
		return nil, fmt.Errorf("split document: %w", err)
	}

	segments := make([]core.TextSegment, 0, len(chunks))
	for i, chunk := range chunks {
		if core.IsBlank(chunk) {
			continue
		}
		metadata := make(map[string]string, len(doc.Metadata)+1)
		for k, v := range doc.Metadata {
			metadata[k] = v
		}
		metadata[MetaIndex] = strconv.Itoa(i)
		segments = append(segments, core.NewTextSegment(chunk, metadata))
	}
	return segments, nil
}
