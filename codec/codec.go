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


// Package codec provides the JSON codec used across llmkit for persistence
// and tool output: pretty-printed marshaling, RFC 3339 timestamps (the
// encoding/json default for time.Time), and stream variants for files.
package codec

import (
	"encoding/json"
	"io"
)

const indent = "  "

// Marshal serializes v to pretty-printed JSON.
func Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", indent)
}

// Unmarshal deserializes JSON data into v.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Write serializes v as pretty-printed JSON to w, followed by a newline.
func Write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	return enc.Encode(v)
}

// Read deserializes a single JSON value from r into v.
func Read(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
