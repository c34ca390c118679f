package ollama

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

func ndjson(lines ...string) string {
	body := ""
	for _, line := range lines {
		body += line + "\n"
	}
	return body
}

func newTestChatModel(t *testing.T, serverURL string) *ChatModel {
	t.Helper()
	m, err := NewChatModel(WithBaseURL(serverURL), WithModel("llama3"))
	require.NoError(t, err)
	return m
}

func TestGenerateStream(t *testing.T) {
	var gotPath string
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/x-ndjson")
		fmt.Fprint(w, ndjson(
			`{"model":"llama3","message":{"role":"assistant","content":"Hi"},"done":false}`,
			`{"model":"llama3","message":{"role":"assistant","content":" there"},"done":false}`,
			`{"model":"llama3","message":{"role":"assistant","content":""},"done":true,"done_reason":"stop","prompt_eval_count":7,"eval_count":2}`,
		))
	}))
	defer server.Close()

	m := newTestChatModel(t, server.URL)
	handler := &model.CollectingHandler{}

	m.GenerateStream(context.Background(), []core.Message{core.UserMessage("hi")}, handler)

	assert.Equal(t, "/api/chat", gotPath)
	assert.Equal(t, "llama3", gotReq.Model)
	assert.True(t, gotReq.Stream)
	assert.Nil(t, gotReq.Options)

	assert.Equal(t, []string{"Hi", " there"}, handler.Tokens)
	assert.Equal(t, 1, handler.Completes)
	assert.Equal(t, 0, handler.Errors)
	require.NotNil(t, handler.Response)
	assert.Equal(t, "Hi there", handler.Response.Message.Content)
	assert.Equal(t, core.FinishStop, handler.Response.FinishReason)
	assert.Equal(t, 7, handler.Response.TokenUsage.InputTokens)
	assert.Equal(t, 2, handler.Response.TokenUsage.OutputTokens)
	assert.Equal(t, 9, handler.Response.TokenUsage.TotalTokens)
}

func TestGenerateStream_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"model 'llama3' not found"}`)
	}))
	defer server.Close()

	m := newTestChatModel(t, server.URL)
	handler := &model.CollectingHandler{}

	m.GenerateStream(context.Background(), []core.Message{core.UserMessage("hi")}, handler)

	assert.Equal(t, 0, handler.Completes)
	assert.Equal(t, 1, handler.Errors)

	var apiErr *APIError
	require.ErrorAs(t, handler.Err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "model 'llama3' not found", apiErr.Message)
}

func TestGenerateStream_ToolsUnsupported(t *testing.T) {
	m := newTestChatModel(t, "http://localhost:0")
	handler := &model.CollectingHandler{}

	m.GenerateStream(context.Background(), []core.Message{core.UserMessage("hi")}, handler,
		model.WithTools(core.ToolSpecification{Name: "search"}))

	assert.Equal(t, 1, handler.Errors)
	assert.ErrorIs(t, handler.Err, ErrToolsUnsupported)
}

func TestGenerate(t *testing.T) {
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, `{
			"model":"llama3",
			"message":{"role":"assistant","content":"four"},
			"done":true,"done_reason":"stop",
			"prompt_eval_count":11,"eval_count":1
		}`)
	}))
	defer server.Close()

	m := newTestChatModel(t, server.URL)

	resp, err := m.Generate(context.Background(), []core.Message{
		core.SystemMessage("be brief"),
		core.UserMessage("what is 2+2?"),
	})
	require.NoError(t, err)

	assert.False(t, gotReq.Stream)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)

	assert.Equal(t, "four", resp.Message.Content)
	assert.Equal(t, core.RoleAssistant, resp.Message.Role)
	assert.Equal(t, core.FinishStop, resp.FinishReason)
	assert.Equal(t, 12, resp.TokenUsage.TotalTokens)
}

func TestGenerate_RunnerOptions(t *testing.T) {
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, `{"message":{"role":"assistant","content":"ok"},"done":true,"done_reason":"stop"}`)
	}))
	defer server.Close()

	m, err := NewChatModel(
		WithBaseURL(server.URL),
		WithModel("llama3"),
		WithTemperature(0.2),
		WithNumPredict(64),
	)
	require.NoError(t, err)

	_, err = m.Generate(context.Background(), []core.Message{core.UserMessage("hi")})
	require.NoError(t, err)

	require.NotNil(t, gotReq.Options)
	require.NotNil(t, gotReq.Options.Temperature)
	assert.Equal(t, 0.2, *gotReq.Options.Temperature)
	require.NotNil(t, gotReq.Options.NumPredict)
	assert.Equal(t, 64, *gotReq.Options.NumPredict)
	assert.Nil(t, gotReq.Options.TopK)
}

func TestGenerate_NoMessages(t *testing.T) {
	m := newTestChatModel(t, "http://localhost:0")

	_, err := m.Generate(context.Background(), nil)
	assert.ErrorIs(t, err, core.ErrNoMessages)
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, NewConfig().Validate())
	assert.NoError(t, NewConfig(WithModel("llama3")).Validate())
	assert.Equal(t, DefaultBaseURL, NewConfig().BaseURL)
}
