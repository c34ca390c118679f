package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/llmkit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedTexts(t *testing.T) {
	var gotPath string
	var gotReq embedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, `{"embeddings":[[0.1,0.2],[0.3,0.4]]}`)
	}))
	defer server.Close()

	m, err := NewEmbeddingModel(WithBaseURL(server.URL), WithModel("nomic-embed-text"))
	require.NoError(t, err)

	embeddings, err := m.EmbedTexts(context.Background(), []string{"first", "second"})
	require.NoError(t, err)

	assert.Equal(t, "/api/embed", gotPath)
	assert.Equal(t, "nomic-embed-text", gotReq.Model)
	assert.Equal(t, []string{"first", "second"}, gotReq.Input)

	require.Len(t, embeddings, 2)
	assert.Equal(t, core.Embedding{0.1, 0.2}, embeddings[0])
	assert.Equal(t, core.Embedding{0.3, 0.4}, embeddings[1])
}

func TestEmbedTexts_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"embeddings":[[0.1]]}`)
	}))
	defer server.Close()

	m, err := NewEmbeddingModel(WithBaseURL(server.URL), WithModel("nomic-embed-text"))
	require.NoError(t, err)

	_, err = m.EmbedTexts(context.Background(), []string{"a", "b"})
	assert.ErrorContains(t, err, "mismatch")
}

func TestEmbedText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"embeddings":[[1,0,0]]}`)
	}))
	defer server.Close()

	m, err := NewEmbeddingModel(WithBaseURL(server.URL), WithModel("nomic-embed-text"))
	require.NoError(t, err)

	embedding, err := m.EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, 3, embedding.Dim())
}
