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

import "errors"

// Domain validation errors
var (
	// ErrNoMessages indicates a chat call was made with an empty message list.
	ErrNoMessages = errors.New("at least one message is required")

	// ErrEmptyText indicates an embedding or split was requested for empty text.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrDimensionMismatch indicates two embeddings have different lengths.
	ErrDimensionMismatch = errors.New("embedding dimensions do not match")
)
