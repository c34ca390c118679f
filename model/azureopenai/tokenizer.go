package azureopenai

import (
	"log/slog"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/poiesic/llmkit/codec"
	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/model"
)

// Per-message framing overhead of the chat completions format, per the
// OpenAI token counting guide: every message costs 3 tokens of framing,
// a name field costs 1 more, and every reply is primed with 3 tokens.
const (
	tokensPerMessage = 3
	tokensPerName    = 1
	tokensPerReply   = 3

	// Function specifications are serialized into the system prompt with
	// fixed framing per function.
	tokensPerFunction = 6
)

// Tokenizer estimates OpenAI token counts using the tiktoken BPE
// vocabularies. The vocabulary is loaded on first use; if it cannot be
// loaded (unknown deployment name, no network for the vocabulary fetch),
// the tokenizer degrades to a characters/4 heuristic.
type Tokenizer struct {
	modelName string
	logger    *slog.Logger

	once   sync.Once
	encode func(text string) []int
}

var _ model.Tokenizer = (*Tokenizer)(nil)

// NewTokenizer creates a tokenizer for the given model or deployment name.
func NewTokenizer(modelName string) *Tokenizer {
	return &Tokenizer{
		modelName: modelName,
		logger:    slog.Default().With("component", "openai-tokenizer"),
	}
}

func (t *Tokenizer) ensureEncoder() {
	t.once.Do(func() {
		if t.encode != nil {
			return
		}
		enc, err := tiktoken.EncodingForModel(normalizeModelName(t.modelName))
		if err != nil {
			enc, err = tiktoken.GetEncoding("cl100k_base")
		}
		if err != nil {
			t.logger.Warn("could not load tiktoken vocabulary, using heuristic",
				"model", t.modelName, "err", err)
			t.encode = func(text string) []int {
				return make([]int, (len(text)+3)/4)
			}
			return
		}
		t.encode = func(text string) []int {
			return enc.Encode(text, nil, nil)
		}
	})
}

// normalizeModelName maps Azure deployment naming to tiktoken model naming
// (Azure uses dashes where tiktoken expects dots: gpt-35-turbo vs
// gpt-3.5-turbo).
func normalizeModelName(name string) string {
	switch name {
	case ModelGPT35Turbo, ModelGPT35Turbo16K:
		return "gpt-3.5-turbo"
	default:
		return name
	}
}

// EstimateTokens estimates the token count of a text string.
func (t *Tokenizer) EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	t.ensureEncoder()
	return len(t.encode(text))
}

// EstimateMessageTokens estimates the token count of a conversation,
// including per-message framing and the reply primer.
func (t *Tokenizer) EstimateMessageTokens(messages []core.Message) int {
	count := tokensPerReply
	for _, msg := range messages {
		count += tokensPerMessage
		count += t.EstimateTokens(string(msg.Role))
		count += t.EstimateTokens(msg.Content)
		if msg.Name != "" {
			count += tokensPerName
			count += t.EstimateTokens(msg.Name)
		}
		if msg.ToolCall != nil {
			count += t.EstimateTokens(msg.ToolCall.Name)
			count += t.EstimateTokens(msg.ToolCall.Arguments)
		}
	}
	return count
}

// EstimateToolTokens estimates the token count contributed by tool
// specifications. The parameters schema is measured in its JSON form, which
// tracks the service's serialization closely enough for budgeting.
func (t *Tokenizer) EstimateToolTokens(tools []core.ToolSpecification) int {
	count := 0
	for _, tool := range tools {
		count += tokensPerFunction
		count += t.EstimateTokens(tool.Name)
		count += t.EstimateTokens(tool.Description)
		if len(tool.Parameters) > 0 {
			data, err := codec.Marshal(tool.Parameters)
			if err != nil {
				t.logger.Warn("could not serialize tool parameters", "tool", tool.Name, "err", err)
				continue
			}
			count += t.EstimateTokens(string(data))
		}
	}
	return count
}
