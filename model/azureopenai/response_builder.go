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
	"strings"

	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/model"
)

// streamingResponseBuilder accumulates the partial deltas of a streamed chat
// completion into a complete response. Content fragments and function-call
// name/argument fragments are appended in arrival order; the finish reason
// is taken from the last chunk that carries one.
//
// Output tokens are counted as one per delta, which matches the service's
// one-token-per-event framing. When a tokenizer is available, build replaces
// that count with a measurement of the assembled text.
type streamingResponseBuilder struct {
	content       strings.Builder
	toolName      strings.Builder
	toolArguments strings.Builder

	inputTokens  int
	outputTokens int
	finishReason core.FinishReason
}

func newStreamingResponseBuilder(inputTokens int) *streamingResponseBuilder {
	return &streamingResponseBuilder{inputTokens: inputTokens}
}

// append folds one streamed chunk into the builder. Chunks without choices
// (such as content-filter annotations) are ignored.
func (b *streamingResponseBuilder) append(chunk *chatCompletionResponse) {
	if chunk == nil || len(chunk.Choices) == 0 {
		return
	}
	choice := chunk.Choices[0]

	if choice.FinishReason != "" {
		b.finishReason = toFinishReason(choice.FinishReason)
	}

	delta := choice.Delta
	if delta == nil {
		return
	}
	if delta.Content != "" {
		b.content.WriteString(delta.Content)
		b.outputTokens++
	}
	if delta.FunctionCall != nil {
		if delta.FunctionCall.Name != "" {
			b.toolName.WriteString(delta.FunctionCall.Name)
		}
		if delta.FunctionCall.Arguments != "" {
			b.toolArguments.WriteString(delta.FunctionCall.Arguments)
		}
		b.outputTokens++
	}
}

// contentDelta returns the content fragment of a chunk, or "" if none.
func contentDelta(chunk *chatCompletionResponse) string {
	if chunk == nil || len(chunk.Choices) == 0 || chunk.Choices[0].Delta == nil {
		return ""
	}
	return chunk.Choices[0].Delta.Content
}

// build produces the final response. forcedToolName carries the tool name
// when the request forced a specific tool; the service omits the name from
// deltas in that case.
func (b *streamingResponseBuilder) build(tokenizer model.Tokenizer, forcedToolName string) *core.Response {
	toolName := b.toolName.String()
	if toolName == "" && forcedToolName != "" && b.toolArguments.Len() > 0 {
		toolName = forcedToolName
	}

	var message core.Message
	outputTokens := b.outputTokens
	finishReason := b.finishReason

	if toolName != "" {
		message = core.Message{
			Role: core.RoleAssistant,
			ToolCall: &core.ToolCall{
				Name:      toolName,
				Arguments: b.toolArguments.String(),
			},
		}
		if tokenizer != nil {
			outputTokens = tokenizer.EstimateTokens(b.toolArguments.String())
		}
		if finishReason == "" {
			finishReason = core.FinishToolCall
		}
	} else {
		message = core.AssistantMessage(b.content.String())
		if tokenizer != nil {
			outputTokens = tokenizer.EstimateTokens(b.content.String())
		}
	}
	if finishReason == "" {
		finishReason = core.FinishOther
	}

	return &core.Response{
		Message:      message,
		TokenUsage:   core.NewTokenUsage(b.inputTokens, outputTokens),
		FinishReason: finishReason,
	}
}

func toFinishReason(reason string) core.FinishReason {
	switch reason {
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
