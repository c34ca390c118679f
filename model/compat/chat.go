package compat

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/model"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrToolsUnsupported indicates a request carried tool specifications,
// which this adapter does not map.
var ErrToolsUnsupported = errors.New("compat does not support tool use")

// ChatModel is a chat model behind an OpenAI-compatible server. It
// implements model.ChatModel and model.StreamingChatModel.
type ChatModel struct {
	config *Config
	client *openai.LLM
	logger *slog.Logger
}

var (
	_ model.ChatModel          = (*ChatModel)(nil)
	_ model.StreamingChatModel = (*ChatModel)(nil)
)

// NewChatModel creates a chat model from the given configuration. The
// config is validated and normalized before use.
func NewChatModel(cfg *Config) (*ChatModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(cfg.Host),
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatModel{
		config: cfg,
		client: client,
		logger: logger.With("component", "compat-chat"),
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

	m.logger.Debug("chat request", "model", m.config.ChatModel, "messages", len(messages))

	resp, err := m.client.GenerateContent(ctx, toContent(messages), m.callOptions()...)
	if err != nil {
		m.logger.Error("chat request failed", "err", err)
		return nil, err
	}
	return toResponse(resp)
}

// GenerateStream produces a response incrementally. Content fragments are
// forwarded to handler.OnToken as they arrive; the aggregated response is
// delivered once through handler.OnComplete, or the terminating error once
// through handler.OnError.
func (m *ChatModel) GenerateStream(ctx context.Context, messages []core.Message, handler model.StreamHandler, opts ...model.GenerateOption) {
	if len(messages) == 0 {
		handler.OnError(core.ErrNoMessages)
		return
	}
	if len(model.NewGenerateOptions(opts...).Tools) > 0 {
		handler.OnError(ErrToolsUnsupported)
		return
	}

	m.logger.Debug("streaming chat request", "model", m.config.ChatModel, "messages", len(messages))

	callOpts := append(m.callOptions(), llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
		if len(chunk) > 0 {
			handler.OnToken(string(chunk))
		}
		return nil
	}))

	resp, err := m.client.GenerateContent(ctx, toContent(messages), callOpts...)
	if err != nil {
		m.logger.Error("streaming chat request failed", "err", err)
		handler.OnError(err)
		return
	}

	out, err := toResponse(resp)
	if err != nil {
		handler.OnError(err)
		return
	}
	handler.OnComplete(out)
}

func (m *ChatModel) callOptions() []llms.CallOption {
	var opts []llms.CallOption
	if m.config.Temperature != nil {
		opts = append(opts, llms.WithTemperature(*m.config.Temperature))
	}
	return opts
}

func toContent(messages []core.Message) []llms.MessageContent {
	out := make([]llms.MessageContent, len(messages))
	for i, msg := range messages {
		out[i] = llms.MessageContent{
			Role:  toChatMessageType(msg.Role),
			Parts: []llms.ContentPart{llms.TextPart(msg.Content)},
		}
	}
	return out
}

func toChatMessageType(role core.Role) llms.ChatMessageType {
	switch role {
	case core.RoleSystem:
		return llms.ChatMessageTypeSystem
	case core.RoleAssistant:
		return llms.ChatMessageTypeAI
	case core.RoleTool:
		return llms.ChatMessageTypeTool
	default:
		return llms.ChatMessageTypeHuman
	}
}

func toResponse(resp *llms.ContentResponse) (*core.Response, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return nil, errors.New("no choices in response")
	}
	choice := resp.Choices[0]

	return &core.Response{
		Message:      core.AssistantMessage(choice.Content),
		TokenUsage:   toTokenUsage(choice.GenerationInfo),
		FinishReason: toFinishReason(choice.StopReason),
	}, nil
}

// toTokenUsage extracts token counts from the per-choice generation info,
// where the langchaingo openai client records usage.
func toTokenUsage(info map[string]any) core.TokenUsage {
	return core.TokenUsage{
		InputTokens:  intValue(info, "PromptTokens"),
		OutputTokens: intValue(info, "CompletionTokens"),
		TotalTokens:  intValue(info, "TotalTokens"),
	}
}

func intValue(info map[string]any, key string) int {
	if info == nil {
		return 0
	}
	n, _ := info[key].(int)
	return n
}

func toFinishReason(stopReason string) core.FinishReason {
	switch stopReason {
	case "stop":
		return core.FinishStop
	case "length":
		return core.FinishLength
	case "function_call", "tool_calls":
		return core.FinishToolCall
	case "content_filter":
		return core.FinishContentFilter
	default:
		return core.FinishOther
	}
}
