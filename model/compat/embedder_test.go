package compat

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedTexts(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{
			"data":[
				{"index":0,"embedding":[0.1,0.2,0.3]},
				{"index":1,"embedding":[0.4,0.5,0.6]}
			]
		}`)
	}))
	defer server.Close()

	m, err := NewEmbeddingModel(NewConfig(WithHost(server.URL), WithEmbeddingModel("test-embed")))
	require.NoError(t, err)

	embeddings, err := m.EmbedTexts(context.Background(), []string{"first", "second"})
	require.NoError(t, err)

	assert.Equal(t, "/v1/embeddings", gotPath)
	require.Len(t, embeddings, 2)
	assert.Equal(t, 3, embeddings[0].Dim())
	assert.InDelta(t, 0.4, embeddings[1][0], 1e-6)
}

func TestEmbedText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"index":0,"embedding":[1,0]}]}`)
	}))
	defer server.Close()

	m, err := NewEmbeddingModel(NewConfig(WithHost(server.URL)))
	require.NoError(t, err)

	embedding, err := m.EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, 2, embedding.Dim())
}

// emptyEmbedder reports success with no vectors.
type emptyEmbedder struct{}

func (emptyEmbedder) EmbedDocuments(context.Context, []string) ([][]float32, error) {
	return nil, nil
}

func (emptyEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return nil, nil
}

func TestEmbedText_EmptyResponse(t *testing.T) {
	m := &EmbeddingModel{
		config:   DefaultConfig(),
		embedder: emptyEmbedder{},
		logger:   slog.Default(),
	}

	_, err := m.EmbedText(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrEmptyEmbedding)
}
