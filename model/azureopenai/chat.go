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

package azureopenai

import (
	"context"
	"log/slog"

	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/model"
)

// ChatModel is a chat completion model hosted on Azure OpenAI (or the
// OpenAI service, see WithNonAzureAPIKey). It implements model.ChatModel,
// model.StreamingChatModel, and model.TokenCountEstimator.
type ChatModel struct {
	config    *Config
	client    *client
	tokenizer model.Tokenizer
	logger    *slog.Logger
}

var (
	_ model.ChatModel           = (*ChatModel)(nil)
	_ model.StreamingChatModel  = (*ChatModel)(nil)
	_ model.TokenCountEstimator = (*ChatModel)(nil)
)

// NewChatModel creates a chat model from the given options. Unless
// overridden with WithTokenizer, a tiktoken tokenizer for the configured
// deployment estimates input token usage.
func NewChatModel(opts ...Option) (*ChatModel, error) {
	cfg := NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tokenizer := cfg.Tokenizer
	if tokenizer == nil {
		tokenizer = NewTokenizer(cfg.Deployment)
	}

	return &ChatModel{
		config:    cfg,
		client:    newClient(cfg),
		tokenizer: tokenizer,
		logger:    logger.With("component", "azureopenai-chat"),
	}, nil
}

// Generate produces a complete response in a single request.
func (m *ChatModel) Generate(ctx context.Context, messages []core.Message, opts ...model.GenerateOption) (*core.Response, error) {
	if len(messages) == 0 {
		return nil, core.ErrNoMessages
	}
	genOpts := model.NewGenerateOptions(opts...)
	req := m.buildRequest(messages, genOpts, false)

	m.logger.Debug("chat completion request", "deployment", m.config.Deployment, "messages", len(messages))

	var resp chatCompletionResponse
	if err := m.client.postJSON(ctx, "chat/completions", req, &resp); err != nil {
		return nil, err
	}
	return m.toResponse(&resp)
}

// GenerateStream produces a response incrementally. Content deltas are
// forwarded to handler.OnToken as they arrive; the aggregated response is
// delivered once through handler.OnComplete, or the terminating error once
// through handler.OnError.
func (m *ChatModel) GenerateStream(ctx context.Context, messages []core.Message, handler model.StreamHandler, opts ...model.GenerateOption) {
	if len(messages) == 0 {
		handler.OnError(core.ErrNoMessages)
		return
	}
	genOpts := model.NewGenerateOptions(opts...)
	req := m.buildRequest(messages, genOpts, true)

	builder := newStreamingResponseBuilder(m.estimateInputTokens(messages, genOpts))

	m.logger.Debug("streaming chat completion request", "deployment", m.config.Deployment, "messages", len(messages))

	err := m.client.streamChat(ctx, req, func(chunk *chatCompletionResponse) {
		builder.append(chunk)
		if content := contentDelta(chunk); content != "" {
			handler.OnToken(content)
		}
	})
	if err != nil {
		m.logger.Error("streaming chat completion failed", "err", err)
		handler.OnError(err)
		return
	}
	handler.OnComplete(builder.build(m.tokenizer, genOpts.ForcedTool))
}

// EstimateTokenCount estimates the input token count of a conversation.
// Returns 0 when no tokenizer is available for the deployment.
func (m *ChatModel) EstimateTokenCount(messages []core.Message) int {
	if m.tokenizer == nil {
		return 0
	}
	return m.tokenizer.EstimateMessageTokens(messages)
}

func (m *ChatModel) estimateInputTokens(messages []core.Message, genOpts *model.GenerateOptions) int {
	if m.tokenizer == nil {
		return 0
	}
	count := m.tokenizer.EstimateMessageTokens(messages)
	if len(genOpts.Tools) > 0 {
		count += m.tokenizer.EstimateToolTokens(genOpts.Tools)
	}
	return count
}

func (m *ChatModel) buildRequest(messages []core.Message, genOpts *model.GenerateOptions, stream bool) *chatCompletionRequest {
	req := &chatCompletionRequest{
		Messages:         toChatMessages(messages),
		Temperature:      m.config.Temperature,
		TopP:             m.config.TopP,
		MaxTokens:        m.config.MaxTokens,
		Stop:             m.config.Stop,
		PresencePenalty:  m.config.PresencePenalty,
		FrequencyPenalty: m.config.FrequencyPenalty,
		Stream:           stream,
	}
	if !m.config.azure() {
		req.Model = m.config.Deployment
	}
	if len(genOpts.Tools) > 0 {
		req.Functions = toFunctions(genOpts.Tools)
	}
	if genOpts.ForcedTool != "" {
		req.FunctionCall = &functionCallRef{Name: genOpts.ForcedTool}
	}
	return req
}

// toResponse maps a full (non-streamed) completion to the common model.
func (m *ChatModel) toResponse(resp *chatCompletionResponse) (*core.Response, error) {
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}
	choice := resp.Choices[0]

	var message core.Message
	switch {
	case choice.Message == nil:
		message = core.AssistantMessage("")
	case choice.Message.FunctionCall != nil:
		message = core.Message{
			Role: core.RoleAssistant,
			ToolCall: &core.ToolCall{
				Name:      choice.Message.FunctionCall.Name,
				Arguments: choice.Message.FunctionCall.Arguments,
			},
		}
	default:
		message = core.AssistantMessage(choice.Message.Content)
	}

	var tokenUsage core.TokenUsage
	if resp.Usage != nil {
		tokenUsage = core.TokenUsage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}

	return &core.Response{
		Message:      message,
		TokenUsage:   tokenUsage,
		FinishReason: toFinishReason(choice.FinishReason),
	}, nil
}

func toChatMessages(messages []core.Message) []chatMessage {
	out := make([]chatMessage, len(messages))
	for i, msg := range messages {
		out[i] = chatMessage{
			Role:    toWireRole(msg.Role),
			Content: msg.Content,
			Name:    msg.Name,
		}
		if msg.ToolCall != nil {
			out[i].FunctionCall = &functionCall{
				Name:      msg.ToolCall.Name,
				Arguments: msg.ToolCall.Arguments,
			}
		}
	}
	return out
}

// toWireRole maps common roles to the wire protocol. Tool results travel as
// function-role messages on the functions API surface.
func toWireRole(role core.Role) string {
	if role == core.RoleTool {
		return "function"
	}
	return string(role)
}

func toFunctions(tools []core.ToolSpecification) []function {
	out := make([]function, len(tools))
	for i, tool := range tools {
		out[i] = function{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  tool.Parameters,
		}
	}
	return out
}
