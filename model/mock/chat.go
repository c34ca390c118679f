package mock

import (
	"context"
	"strings"

	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/model"
)

// ChatModel is a test double for model.ChatModel and
// model.StreamingChatModel. It replays scripted responses in order.
type ChatModel struct {
	// GenerateFunc is called by Generate and GenerateStream if set.
	// If nil, the scripted responses are replayed.
	GenerateFunc func(ctx context.Context, messages []core.Message) (*core.Response, error)

	// Err, when set, terminates every call with this error.
	Err error

	responses []string
	callCount int
}

var (
	_ model.ChatModel          = (*ChatModel)(nil)
	_ model.StreamingChatModel = (*ChatModel)(nil)
)

// NewChatModel creates a mock chat model that replays the given responses
// in order. Calls beyond the script repeat the last response; with no
// script, responses are empty.
func NewChatModel(responses ...string) *ChatModel {
	return &ChatModel{responses: responses}
}

// Generate returns the next scripted response.
func (m *ChatModel) Generate(ctx context.Context, messages []core.Message, opts ...model.GenerateOption) (*core.Response, error) {
	resp, err := m.next(ctx, messages)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GenerateStream streams the next scripted response as whitespace-delimited
// tokens, then completes.
func (m *ChatModel) GenerateStream(ctx context.Context, messages []core.Message, handler model.StreamHandler, opts ...model.GenerateOption) {
	resp, err := m.next(ctx, messages)
	if err != nil {
		handler.OnError(err)
		return
	}
	for i, word := range strings.Fields(resp.Message.Content) {
		if i > 0 {
			handler.OnToken(" ")
		}
		handler.OnToken(word)
	}
	handler.OnComplete(resp)
}

// CallCount returns the number of times Generate or GenerateStream was
// called.
func (m *ChatModel) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *ChatModel) Reset() {
	m.callCount = 0
	m.GenerateFunc = nil
	m.Err = nil
}

func (m *ChatModel) next(ctx context.Context, messages []core.Message) (*core.Response, error) {
	m.callCount++

	if m.Err != nil {
		return nil, m.Err
	}
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, messages)
	}
	if len(messages) == 0 {
		return nil, core.ErrNoMessages
	}

	content := ""
	if len(m.responses) > 0 {
		i := min(m.callCount-1, len(m.responses)-1)
		content = m.responses[i]
	}
	return &core.Response{
		Message:      core.AssistantMessage(content),
		FinishReason: core.FinishStop,
	}, nil
}
