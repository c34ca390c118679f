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

// StreamHandler receives the events of a single streaming generation.
// OnToken fires zero or more times with partial content, in order. Then
// exactly one of OnComplete or OnError fires, exactly once.
type StreamHandler interface {
	// OnToken receives a partial content fragment.
	OnToken(token string)

	// OnComplete receives the complete aggregated response.
	OnComplete(response *core.Response)

	// OnError receives the error that terminated the stream.
	OnError(err error)
}

// HandlerFuncs adapts plain functions to StreamHandler. Nil fields are
// ignored, so callers can subscribe to only the events they care about.
type HandlerFuncs struct {
	TokenFunc    func(token string)
	CompleteFunc func(response *core.Response)
	ErrorFunc    func(err error)
}

var _ StreamHandler = (*HandlerFuncs)(nil)

func (h *HandlerFuncs) OnToken(token string) {
	if h.TokenFunc != nil {
		h.TokenFunc(token)
	}
}

func (h *HandlerFuncs) OnComplete(response *core.Response) {
	if h.CompleteFunc != nil {
		h.CompleteFunc(response)
	}
}

func (h *HandlerFuncs) OnError(err error) {
	if h.ErrorFunc != nil {
		h.ErrorFunc(err)
	}
}

// CollectingHandler records every event it receives. Since GenerateStream
// blocks, the fields are safe to read once the call returns. Intended for
// tests and for callers that want the streaming token trace alongside the
// final response.
type CollectingHandler struct {
	Tokens    []string
	Response  *core.Response
	Err       error
	Completes int
	Errors    int
}

var _ StreamHandler = (*CollectingHandler)(nil)

func (h *CollectingHandler) OnToken(token string) {
	h.Tokens = append(h.Tokens, token)
}

func (h *CollectingHandler) OnComplete(response *core.Response) {
	h.Response = response
	h.Completes++
}

func (h *CollectingHandler) OnError(err error) {
	h.Err = err
	h.Errors++
}
