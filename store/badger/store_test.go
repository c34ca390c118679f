package badger

import (
	"context"
	"testing"

	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	backend, err := OpenBackend(t.TempDir(), false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestAddAndFindRelevant(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.AddSegment(ctx, core.Embedding{1, 0}, core.NewTextSegment("east", nil))
	require.NoError(t, err)
	_, err = s.AddSegment(ctx, core.Embedding{0, 1}, core.NewTextSegment("north", nil))
	require.NoError(t, err)
	_, err = s.AddSegment(ctx, core.Embedding{-1, 0}, core.NewTextSegment("west", nil))
	require.NoError(t, err)

	matches, err := s.FindRelevant(ctx, core.Embedding{1, 0}, 10, 0)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "east", matches[0].Segment.Text)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
	assert.Equal(t, "north", matches[1].Segment.Text)
	assert.InDelta(t, 0.5, matches[1].Score, 1e-6)
	assert.Equal(t, "west", matches[2].Segment.Text)
	assert.InDelta(t, 0.0, matches[2].Score, 1e-6)
}

func TestFindRelevant_MinScoreAndLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.AddAll(ctx, []core.Embedding{{1, 0}, {0, 1}, {-1, 0}})
	require.NoError(t, err)

	matches, err := s.FindRelevant(ctx, core.Embedding{1, 0}, 10, 0.6)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	matches, err = s.FindRelevant(ctx, core.Embedding{1, 0}, 2, 0)
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	_, err = s.FindRelevant(ctx, core.Embedding{1, 0}, 0, 0)
	assert.ErrorIs(t, err, store.ErrInvalidQuery)
}

func TestAddWithID_Replaces(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddWithID(ctx, "x", core.Embedding{1, 0}))
	require.NoError(t, s.AddWithID(ctx, "x", core.Embedding{0, 1}))

	matches, err := s.FindRelevant(ctx, core.Embedding{0, 1}, 10, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "x", matches[0].ID)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
}

func TestAddAll_EmptyAndMismatch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ids, err := s.AddAll(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = s.AddAllSegments(ctx, []core.Embedding{{1}}, []core.TextSegment{})
	assert.ErrorIs(t, err, store.ErrCountMismatch)
}

func TestSegmentMetadataSurvivesRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	segment := core.NewTextSegment("hello world", map[string]string{"source": "fixture", "index": "2"})
	id, err := s.AddSegment(ctx, core.Embedding{0.5, 0.5}, segment)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	matches, err := s.FindRelevant(ctx, core.Embedding{0.5, 0.5}, 1, 0.9)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.NotNil(t, matches[0].Segment)
	assert.Equal(t, "hello world", matches[0].Segment.Text)
	assert.Equal(t, "fixture", matches[0].Segment.Metadata["source"])
	assert.Equal(t, "2", matches[0].Segment.Metadata["index"])
}

func TestPersistenceAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	_, err = s.AddSegment(ctx, core.Embedding{1, 0}, core.NewTextSegment("persisted", nil))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	matches, err := reopened.FindRelevant(ctx, core.Embedding{1, 0}, 1, 0.9)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "persisted", matches[0].Segment.Text)
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewMemoryStore()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Add(ctx, core.Embedding{1})
	assert.ErrorIs(t, err, store.ErrStorageClosed)

	_, err = s.FindRelevant(ctx, core.Embedding{1}, 1, 0)
	assert.ErrorIs(t, err, store.ErrStorageClosed)
}

func TestSharedBackend(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	s := NewStore(backend)
	require.NoError(t, s.Close())

	// Backend stays open: the store does not own it.
	assert.False(t, backend.IsClosed())
}
