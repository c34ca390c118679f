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

package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/model"
)

// ChatModel is a chat model served by Ollama. It implements model.ChatModel
// and model.StreamingChatModel.
type ChatModel struct {
	config *Config
	client *client
	logger *slog.Logger
}

var (
	_ model.ChatModel          = (*ChatModel)(nil)
	_ model.StreamingChatModel = (*ChatModel)(nil)
)

// NewChatModel creates a chat model from the given options. WithModel is
// required.
func NewChatModel(opts ...Option) (*ChatModel, error) {
	cfg := NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatModel{
		config: cfg,
		client: newClient(cfg),
		logger: logger.With("component", "ollama-chat"),
	}, nil
}

// Generate produces a complete response in a single request.
func (m *ChatModel) Generate(ctx context.Context, messages []core.Message, opts ...model.GenerateOption) (*core.Response, error) {
	if len(messages) == 0 {
		return nil, core.ErrNoMessages
	}
	if len(model.NewGenerateOptions(opts...).Tools) > 0 {
		return nil, ErrToolsUnsupported
	}

	m.logger.Debug("chat request", "model", m.config.Model, "messages", len(messages))

	var resp chatResponse
	if err := m.client.postJSON(ctx, "/api/chat", m.buildRequest(messages, false), &resp); err != nil {
		return nil, err
	}
	return toResponse(&resp), nil
}

// GenerateStream produces a response incrementally. Each generated fragment
// is forwarded to handler.OnToken; the aggregated response, with token
// counts reported by the final stream object, is delivered once through
// handler.OnComplete, or the terminating error once through handler.OnError.
func (m *ChatModel) GenerateStream(ctx context.Context, messages []core.Message, handler model.StreamHandler, opts ...model.GenerateOption) {
	if len(messages) == 0 {
		handler.OnError(core.ErrNoMessages)
		return
	}
	if len(model.NewGenerateOptions(opts...).Tools) > 0 {
		handler.OnError(ErrToolsUnsupported)
		return
	}

	m.logger.Debug("streaming chat request", "model", m.config.Model, "messages", len(messages))

	resp, err := m.client.post(ctx, "/api/chat", m.buildRequest(messages, true))
	if err != nil {
		m.logger.Error("streaming chat request failed", "err", err)
		handler.OnError(err)
		return
	}
	defer resp.Body.Close()

	var content strings.Builder
	var final chatResponse

	decoder := json.NewDecoder(resp.Body)
	for {
		var chunk chatResponse
		if err := decoder.Decode(&chunk); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			m.logger.Error("streaming chat decode failed", "err", err)
			handler.OnError(fmt.Errorf("decode stream: %w", err))
			return
		}
		if chunk.Message.Content != "" {
			content.WriteString(chunk.Message.Content)
			handler.OnToken(chunk.Message.Content)
		}
		if chunk.Done {
			final = chunk
			break
		}
	}

	handler.OnComplete(&core.Response{
		Message:      core.AssistantMessage(content.String()),
		TokenUsage:   core.NewTokenUsage(final.PromptEvalCount, final.EvalCount),
		FinishReason: toFinishReason(final.DoneReason),
	})
}

func (m *ChatModel) buildRequest(messages []core.Message, stream bool) *chatRequest {
	req := &chatRequest{
		Model:    m.config.Model,
		Messages: toMessages(messages),
		Stream:   stream,
	}
	if opts := m.runnerOptions(); opts != nil {
		req.Options = opts
	}
	return req
}

// runnerOptions returns nil when no sampling parameter is set, so the model
// file's own defaults apply.
func (m *ChatModel) runnerOptions() *runnerOptions {
	c := m.config
	if c.Temperature == nil && c.TopK == nil && c.TopP == nil && c.NumPredict == nil && len(c.Stop) == 0 {
		return nil
	}
	return &runnerOptions{
		Temperature: c.Temperature,
		TopK:        c.TopK,
		TopP:        c.TopP,
		NumPredict:  c.NumPredict,
		Stop:        c.Stop,
	}
}

func toMessages(messages []core.Message) []message {
	out := make([]message, len(messages))
	for i, msg := range messages {
		out[i] = message{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}
	return out
}

func toResponse(resp *chatResponse) *core.Response {
	return &core.Response{
		Message:      core.AssistantMessage(resp.Message.Content),
		TokenUsage:   core.NewTokenUsage(resp.PromptEvalCount, resp.EvalCount),
		FinishReason: toFinishReason(resp.DoneReason),
	}
}

func toFinishReason(doneReason string) core.FinishReason {
	switch doneReason {
	case "stop":
		return core.FinishStop
	case "length":
		return core.FinishLength
	default:
		return core.FinishOther
	}
}
