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

// Package compat provides chat and embedding models for OpenAI-compatible
// servers (Ollama's /v1 surface, LocalAI, vLLM, LM Studio), built on the
// langchaingo client.
//
// # Usage
//
//	cfg := compat.NewConfig(
//	    compat.WithHost("http://localhost:11434"), // /v1 added automatically
//	    compat.WithChatModel("qwen2.5:3b"),
//	)
//
//	chat, err := compat.NewChatModel(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := chat.Generate(ctx, []core.Message{core.UserMessage("hello")})
//
// Tool use is not mapped through this adapter; use the azureopenai package
// when function calling is needed.
package compat
