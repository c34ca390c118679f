package retrieval

import (
	"context"
	"testing"

	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/model/mock"
	"github.com/poiesic/llmkit/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T, texts ...string) *memory.Store {
	t.Helper()
	ctx := context.Background()
	embedder := mock.NewEmbedder()

	st := memory.NewStore()
	t.Cleanup(func() { st.Close() })

	for _, text := range texts {
		embedding, err := embedder.EmbedText(ctx, text)
		require.NoError(t, err)
		_, err = st.AddSegment(ctx, embedding, core.NewTextSegment(text, map[string]string{"source": "seed"}))
		require.NoError(t, err)
	}
	return st
}

func TestNewRetriever_Validation(t *testing.T) {
	st := memory.NewStore()
	defer st.Close()

	_, err := NewRetriever(nil, st)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewRetriever(mock.NewEmbedder(), nil)
	assert.ErrorIs(t, err, ErrStoreRequired)
}

func TestRetrieve(t *testing.T) {
	st := seedStore(t, "cats are mammals", "the moon orbits the earth", "go is a programming language")

	r, err := NewRetriever(mock.NewEmbedder(), st)
	require.NoError(t, err)

	// The mock embedder maps equal texts to equal vectors, so an exact
	// phrase retrieves its own segment with score 1.
	results, err := r.Retrieve(context.Background(), "the moon orbits the earth")
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "the moon orbits the earth", results[0].Text)
	assert.InDelta(t, 1.0, results[0].Score, 1e-5)
	assert.Equal(t, "seed", results[0].Metadata["source"])
	assert.NotEmpty(t, results[0].ID)
}

func TestRetrieve_MaxResultsAndMinScore(t *testing.T) {
	st := seedStore(t, "one", "two", "three", "four", "five", "six")

	r, err := NewRetriever(mock.NewEmbedder(), st, WithMaxResults(3))
	require.NoError(t, err)

	results, err := r.Retrieve(context.Background(), "one")
	require.NoError(t, err)
	assert.Len(t, results, 3)

	strict, err := NewRetriever(mock.NewEmbedder(), st, WithMinScore(0.999))
	require.NoError(t, err)

	results, err = strict.Retrieve(context.Background(), "one")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "one", results[0].Text)
}

func TestRetrieve_EmptyQuery(t *testing.T) {
	st := seedStore(t)

	r, err := NewRetriever(mock.NewEmbedder(), st)
	require.NoError(t, err)

	_, err = r.Retrieve(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestRetrieve_SkipsBareEmbeddings(t *testing.T) {
	ctx := context.Background()
	embedder := mock.NewEmbedder()

	st := memory.NewStore()
	defer st.Close()

	embedding, err := embedder.EmbedText(ctx, "bare")
	require.NoError(t, err)
	_, err = st.Add(ctx, embedding)
	require.NoError(t, err)

	r, err := NewRetriever(embedder, st)
	require.NoError(t, err)

	results, err := r.Retrieve(ctx, "bare")
	require.NoError(t, err)
	assert.Empty(t, results)
}
