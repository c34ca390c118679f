package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedderDeterminism(t *testing.T) {
	embedder := NewEmbedder()

	first, err := embedder.EmbedText(context.Background(), "hello world")
	require.NoError(t, err)
	second, err := embedder.EmbedText(context.Background(), "hello world")
	require.NoError(t, err)
	other, err := embedder.EmbedText(context.Background(), "different text")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Equal(t, DefaultDim, first.Dim())
	assert.Equal(t, 3, embedder.CallCount())

	// Unit vectors: self-similarity is 1.
	sim, err := core.CosineSimilarity(first, second)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-5)
}

func TestEmbedderInjection(t *testing.T) {
	embedder := NewEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([]core.Embedding, error) {
		return nil, errors.New("embedder down")
	}

	_, err := embedder.EmbedTexts(context.Background(), []string{"a"})
	assert.ErrorContains(t, err, "embedder down")

	embedder.Reset()
	assert.Equal(t, 0, embedder.CallCount())

	_, err = embedder.EmbedTexts(context.Background(), []string{"a"})
	assert.NoError(t, err)
}

func TestChatModelScript(t *testing.T) {
	chat := NewChatModel("first", "second")

	resp, err := chat.Generate(context.Background(), []core.Message{core.UserMessage("hi")})
	require.NoError(t, err)
	assert.Equal(t, "first", resp.Message.Content)

	resp, err = chat.Generate(context.Background(), []core.Message{core.UserMessage("hi")})
	require.NoError(t, err)
	assert.Equal(t, "second", resp.Message.Content)

	// Script exhausted: last response repeats.
	resp, err = chat.Generate(context.Background(), []core.Message{core.UserMessage("hi")})
	require.NoError(t, err)
	assert.Equal(t, "second", resp.Message.Content)

	assert.Equal(t, 3, chat.CallCount())
}

func TestChatModelStreaming(t *testing.T) {
	chat := NewChatModel("one two three")
	handler := &model.CollectingHandler{}

	chat.GenerateStream(context.Background(), []core.Message{core.UserMessage("hi")}, handler)

	assert.Equal(t, []string{"one", " ", "two", " ", "three"}, handler.Tokens)
	assert.Equal(t, 1, handler.Completes)
	require.NotNil(t, handler.Response)
	assert.Equal(t, "one two three", handler.Response.Message.Content)
}

func TestChatModelError(t *testing.T) {
	chat := NewChatModel("unused")
	chat.Err = errors.New("model offline")

	_, err := chat.Generate(context.Background(), []core.Message{core.UserMessage("hi")})
	assert.ErrorContains(t, err, "model offline")

	handler := &model.CollectingHandler{}
	chat.GenerateStream(context.Background(), []core.Message{core.UserMessage("hi")}, handler)
	assert.Equal(t, 1, handler.Errors)
	assert.Equal(t, 0, handler.Completes)
}
