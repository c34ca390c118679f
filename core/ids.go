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

import (
	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// RandomID returns a random UUID string. Used by embedding stores to
// generate identifiers for entries added without an explicit ID.
func RandomID() string {
	return uuid.NewString()
}

// DeterministicID generates a UUID-shaped identifier from text content
// using BLAKE2b hashing. Identical content always produces the same ID,
// which lets callers deduplicate segments before embedding them.
func DeterministicID(text string) string {
	h, _ := blake2b.New(16, nil) // 16 bytes, matches the UUID wire size
	h.Write([]byte(text))
	sum := h.Sum(nil)
	id, err := uuid.FromBytes(sum)
	if err != nil {
		// Only reachable if the digest size is wrong, which it never is.
		panic(err)
	}
	return id.String()
}
