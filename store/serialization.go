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

package store

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/poiesic/llmkit/core"
)

// Entry is the stored form of an embedding with its optional source
// segment. Persistent backends serialize it with the MUS format.
type Entry struct {
	ID       string
	Vector   core.Embedding
	Text     string
	Metadata map[string]string
}

// Segment returns the source segment of the entry, or nil when the entry
// was stored without one.
func (e *Entry) Segment() *core.TextSegment {
	if e.Text == "" && len(e.Metadata) == 0 {
		return nil
	}
	segment := core.NewTextSegment(e.Text, e.Metadata)
	return &segment
}

var (
	vectorMUS   = ord.NewSliceSer[float32](raw.Float32)
	metadataMUS = ord.NewMapSer[string, string](ord.String, ord.String)
)

// EntryMUS is the MUS serializer for Entry.
var EntryMUS = entryMUS{}

type entryMUS struct{}

func (entryMUS) Marshal(e Entry, bs []byte) (n int) {
	n = ord.String.Marshal(e.ID, bs)
	n += vectorMUS.Marshal(e.Vector, bs[n:])
	n += ord.String.Marshal(e.Text, bs[n:])
	n += metadataMUS.Marshal(e.Metadata, bs[n:])
	return n
}

func (entryMUS) Unmarshal(bs []byte) (e Entry, n int, err error) {
	var n1 int
	if e.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	var vector []float32
	if vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	e.Vector = core.Embedding(vector)
	n += n1
	if e.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	e.Metadata, n1, err = metadataMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (entryMUS) Size(e Entry) (size int) {
	size = ord.String.Size(e.ID)
	size += vectorMUS.Size(e.Vector)
	size += ord.String.Size(e.Text)
	size += metadataMUS.Size(e.Metadata)
	return size
}

func (entryMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = ord.String.Skip(bs); err != nil {
		return
	}
	if n1, err = vectorMUS.Skip(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	n1, err = metadataMUS.Skip(bs[n:])
	n += n1
	return
}

// MarshalEntry serializes an Entry to bytes.
func MarshalEntry(entry *Entry) []byte {
	buf := make([]byte, EntryMUS.Size(*entry))
	EntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalEntry deserializes an Entry from bytes.
func UnmarshalEntry(data []byte) (*Entry, error) {
	entry, _, err := EntryMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &entry, nil
}
