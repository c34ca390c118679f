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


// Package model defines the provider-neutral interfaces for language model
// services: chat completion (blocking and streaming), text embedding, and
// token count estimation.
//
// # Interfaces
//
//   - ChatModel: single request/response chat completion
//   - StreamingChatModel: chat completion delivered incrementally through
//     a StreamHandler
//   - EmbeddingModel: text to vector embedding, single and batch
//   - Tokenizer: token count estimation for texts, messages, and tools
//
// # Implementation Packages
//
//   - model/azureopenai: Azure OpenAI and OpenAI REST adapter
//   - model/ollama: native Ollama API adapter
//   - model/compat: OpenAI-compatible adapter built on the langchaingo SDK
//   - model/mock: deterministic test doubles
//
// # Streaming Contract
//
// StreamingChatModel.GenerateStream blocks until the stream is exhausted.
// While it runs, the handler receives zero or more OnToken calls with
// partial content, then exactly one terminal call: OnComplete with the
// aggregated response on success, or OnError with the provider's error.
// A handler never receives both, and never receives either twice.
package model
