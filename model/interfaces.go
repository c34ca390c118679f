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

package model

import (
	"context"

	"github.com/poiesic/llmkit/core"
)

// ChatModel generates a complete chat response in a single call.
// Implementations must be thread-safe for concurrent use.
type ChatModel interface {
	// Generate produces a response for the given conversation.
	// Options may attach tool specifications or force a specific tool.
	Generate(ctx context.Context, messages []core.Message, opts ...GenerateOption) (*core.Response, error)
}

// StreamingChatModel generates a chat response incrementally.
// Implementations must be thread-safe for concurrent use.
type StreamingChatModel interface {
	// GenerateStream produces a response for the given conversation,
	// delivering partial content through the handler as it arrives.
	// The call blocks until the stream ends. All outcomes, including
	// request construction and transport failures, are reported through
	// the handler: exactly one of OnComplete or OnError fires, once.
	GenerateStream(ctx context.Context, messages []core.Message, handler StreamHandler, opts ...GenerateOption)
}

// EmbeddingModel generates vector embeddings from text.
// Implementations must be thread-safe for concurrent use.
type EmbeddingModel interface {
	// EmbedText generates an embedding for a single text string.
	EmbedText(ctx context.Context, text string) (core.Embedding, error)

	// EmbedTexts generates embeddings for multiple texts in a batch.
	// The returned slice preserves input order.
	EmbedTexts(ctx context.Context, texts []string) ([]core.Embedding, error)
}

// Tokenizer estimates language-model token counts for inputs. Estimates are
// exact for plain text encoded with the model's vocabulary and approximate
// for message and tool framing overhead.
type Tokenizer interface {
	// EstimateTokens estimates the token count of a text string.
	EstimateTokens(text string) int

	// EstimateMessageTokens estimates the token count of a conversation,
	// including per-message framing overhead.
	EstimateMessageTokens(messages []core.Message) int

	// EstimateToolTokens estimates the token count contributed by tool
	// specifications attached to a request.
	EstimateToolTokens(tools []core.ToolSpecification) int
}

// TokenCountEstimator is implemented by chat models that can estimate the
// input token count of a conversation before sending it.
type TokenCountEstimator interface {
	EstimateTokenCount(messages []core.Message) int
}
