package memory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndFindRelevant(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	defer s.Close()

	_, err := s.AddSegment(ctx, core.Embedding{1, 0}, core.NewTextSegment("east", nil))
	require.NoError(t, err)
	_, err = s.AddSegment(ctx, core.Embedding{0, 1}, core.NewTextSegment("north", nil))
	require.NoError(t, err)
	_, err = s.AddSegment(ctx, core.Embedding{-1, 0}, core.NewTextSegment("west", nil))
	require.NoError(t, err)

	matches, err := s.FindRelevant(ctx, core.Embedding{1, 0}, 10, 0)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	// Identical vector first with score 1, orthogonal 0.5, opposite 0.
	assert.Equal(t, "east", matches[0].Segment.Text)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
	assert.Equal(t, "north", matches[1].Segment.Text)
	assert.InDelta(t, 0.5, matches[1].Score, 1e-9)
	assert.Equal(t, "west", matches[2].Segment.Text)
	assert.InDelta(t, 0.0, matches[2].Score, 1e-9)
}

func TestFindRelevant_MinScoreAndLimit(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	defer s.Close()

	_, err := s.AddAll(ctx, []core.Embedding{{1, 0}, {0, 1}, {-1, 0}})
	require.NoError(t, err)

	matches, err := s.FindRelevant(ctx, core.Embedding{1, 0}, 10, 0.6)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)

	matches, err = s.FindRelevant(ctx, core.Embedding{1, 0}, 2, 0)
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	_, err = s.FindRelevant(ctx, core.Embedding{1, 0}, 0, 0)
	assert.ErrorIs(t, err, store.ErrInvalidQuery)
}

func TestFindRelevant_SkipsMismatchedDimensions(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	defer s.Close()

	require.NoError(t, s.AddWithID(ctx, "twodim", core.Embedding{1, 0}))
	require.NoError(t, s.AddWithID(ctx, "threedim", core.Embedding{1, 0, 0}))

	matches, err := s.FindRelevant(ctx, core.Embedding{1, 0}, 10, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "twodim", matches[0].ID)
}

func TestAddWithID_Replaces(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	defer s.Close()

	require.NoError(t, s.AddWithID(ctx, "x", core.Embedding{1, 0}))
	require.NoError(t, s.AddWithID(ctx, "x", core.Embedding{0, 1}))

	assert.Equal(t, 1, s.Len())

	matches, err := s.FindRelevant(ctx, core.Embedding{0, 1}, 1, 0.9)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "x", matches[0].ID)
}

func TestAddAllSegments_CountMismatch(t *testing.T) {
	s := NewStore()
	defer s.Close()

	_, err := s.AddAllSegments(context.Background(),
		[]core.Embedding{{1}}, []core.TextSegment{})
	assert.ErrorIs(t, err, store.ErrCountMismatch)
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Close())

	_, err := s.Add(ctx, core.Embedding{1})
	assert.ErrorIs(t, err, store.ErrStorageClosed)

	_, err = s.FindRelevant(ctx, core.Embedding{1}, 1, 0)
	assert.ErrorIs(t, err, store.ErrStorageClosed)
}

func TestSaveAndLoadFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	s := NewStore()
	_, err := s.AddSegment(ctx, core.Embedding{1, 0}, core.NewTextSegment("hello", map[string]string{"source": "test"}))
	require.NoError(t, err)
	require.NoError(t, s.SaveFile(path))
	require.NoError(t, s.Close())

	loaded := NewStore()
	defer loaded.Close()
	require.NoError(t, loaded.LoadFile(path))
	assert.Equal(t, 1, loaded.Len())

	matches, err := loaded.FindRelevant(ctx, core.Embedding{1, 0}, 1, 0.9)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.NotNil(t, matches[0].Segment)
	assert.Equal(t, "hello", matches[0].Segment.Text)
	assert.Equal(t, "test", matches[0].Segment.Metadata["source"])
}
