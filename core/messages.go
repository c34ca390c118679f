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

package core

// Role identifies the author of a chat message.
type Role string

const (
	// RoleSystem carries instructions that steer the model's behavior.
	RoleSystem Role = "system"
	// RoleUser is a message from the end user.
	RoleUser Role = "user"
	// RoleAssistant is a message produced by the model.
	RoleAssistant Role = "assistant"
	// RoleTool carries the result of a tool invocation back to the model.
	RoleTool Role = "tool"
)

// Message represents a single message in a chat conversation.
// Assistant messages may carry a ToolCall instead of (or in addition to)
// textual content when the model requests a tool invocation.
type Message struct {
	Role     Role
	Content  string
	Name     string    // Tool name, set on RoleTool messages
	ToolCall *ToolCall // Tool invocation requested by the model
}

// SystemMessage creates a system message.
func SystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: text}
}

// UserMessage creates a user message.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// AssistantMessage creates an assistant message.
func AssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: text}
}

// ToolMessage creates a tool result message for the named tool.
func ToolMessage(name, content string) Message {
	return Message{Role: RoleTool, Name: name, Content: content}
}

// ToolCall is a tool invocation requested by the model. Arguments is the
// raw JSON argument payload exactly as produced by the provider.
type ToolCall struct {
	Name      string
	Arguments string
}

// ToolSpecification describes a tool the model may invoke.
// Parameters holds a JSON Schema object describing the tool's arguments.
type ToolSpecification struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// FinishReason explains why the model stopped generating.
type FinishReason string

const (
	// FinishStop means the model produced a natural stop or hit a stop sequence.
	FinishStop FinishReason = "stop"
	// FinishLength means the token limit was reached.
	FinishLength FinishReason = "length"
	// FinishToolCall means the model requested a tool invocation.
	FinishToolCall FinishReason = "tool_call"
	// FinishContentFilter means the provider filtered the output.
	FinishContentFilter FinishReason = "content_filter"
	// FinishOther covers provider-specific reasons with no common mapping.
	FinishOther FinishReason = "other"
)

// TokenUsage tracks token consumption for a single model call.
type TokenUsage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// NewTokenUsage builds a TokenUsage with TotalTokens derived from the parts.
func NewTokenUsage(input, output int) TokenUsage {
	return TokenUsage{
		InputTokens:  input,
		OutputTokens: output,
		TotalTokens:  input + output,
	}
}

// Response is the complete result of a chat model call.
type Response struct {
	Message      Message
	TokenUsage   TokenUsage
	FinishReason FinishReason
}
