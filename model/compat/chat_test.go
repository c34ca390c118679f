package compat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChatModel(t *testing.T, serverURL string) *ChatModel {
	t.Helper()
	m, err := NewChatModel(NewConfig(WithHost(serverURL), WithChatModel("test-model")))
	require.NoError(t, err)
	return m
}

func TestGenerate(t *testing.T) {
	var gotPath string
	var gotReq map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, `{
			"choices":[{"message":{"role":"assistant","content":"hello back"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":5,"completion_tokens":2,"total_tokens":7}
		}`)
	}))
	defer server.Close()

	m := newTestChatModel(t, server.URL)

	resp, err := m.Generate(context.Background(), []core.Message{
		core.SystemMessage("be nice"),
		core.UserMessage("hello"),
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "test-model", gotReq["model"])

	assert.Equal(t, "hello back", resp.Message.Content)
	assert.Equal(t, core.RoleAssistant, resp.Message.Role)
	assert.Equal(t, core.FinishStop, resp.FinishReason)
	assert.Equal(t, 5, resp.TokenUsage.InputTokens)
	assert.Equal(t, 2, resp.TokenUsage.OutputTokens)
	assert.Equal(t, 7, resp.TokenUsage.TotalTokens)
}

func TestGenerateStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w,
			"data: {\"choices\":[{\"delta\":{\"content\":\"Hi\"}}]}\n\n"+
				"data: {\"choices\":[{\"delta\":{\"content\":\" there\"},\"finish_reason\":\"stop\"}]}\n\n"+
				"data: [DONE]\n\n")
	}))
	defer server.Close()

	m := newTestChatModel(t, server.URL)
	handler := &model.CollectingHandler{}

	m.GenerateStream(context.Background(), []core.Message{core.UserMessage("hi")}, handler)

	assert.Equal(t, 0, handler.Errors)
	assert.Equal(t, 1, handler.Completes)
	assert.Equal(t, []string{"Hi", " there"}, handler.Tokens)
	require.NotNil(t, handler.Response)
	assert.Equal(t, "Hi there", handler.Response.Message.Content)
}

func TestGenerate_NoMessages(t *testing.T) {
	m := newTestChatModel(t, "http://localhost:0")

	_, err := m.Generate(context.Background(), nil)
	assert.ErrorIs(t, err, core.ErrNoMessages)
}

func TestGenerate_ToolsUnsupported(t *testing.T) {
	m := newTestChatModel(t, "http://localhost:0")

	_, err := m.Generate(context.Background(), []core.Message{core.UserMessage("hi")},
		model.WithTools(core.ToolSpecification{Name: "search"}))
	assert.ErrorIs(t, err, ErrToolsUnsupported)
}
