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

import "github.com/poiesic/llmkit/core"

// GenerateOptions holds per-call options for chat generation.
type GenerateOptions struct {
	// Tools the model may choose to invoke.
	Tools []core.ToolSpecification

	// ForcedTool, when set, names the single tool the model must invoke.
	// The named tool is sent as the only available tool.
	ForcedTool string
}

// GenerateOption configures a single Generate or GenerateStream call.
type GenerateOption func(*GenerateOptions)

// WithTools attaches tool specifications the model may invoke.
func WithTools(tools ...core.ToolSpecification) GenerateOption {
	return func(o *GenerateOptions) {
		o.Tools = tools
	}
}

// WithForcedTool makes the model invoke the given tool.
func WithForcedTool(tool core.ToolSpecification) GenerateOption {
	return func(o *GenerateOptions) {
		o.Tools = []core.ToolSpecification{tool}
		o.ForcedTool = tool.Name
	}
}

// NewGenerateOptions applies the given options to a fresh GenerateOptions.
func NewGenerateOptions(opts ...GenerateOption) *GenerateOptions {
	o := &GenerateOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
