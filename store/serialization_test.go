package store

import (
	"testing"

	"github.com/poiesic/llmkit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry *Entry
	}{
		{
			name: "minimal entry",
			entry: &Entry{
				ID:     "abc",
				Vector: core.Embedding{0.1, 0.2, 0.3},
			},
		},
		{
			name: "entry with segment",
			entry: &Entry{
				ID:       "def",
				Vector:   core.Embedding{-1, 0, 1},
				Text:     "the quick brown fox",
				Metadata: map[string]string{"source": "fixture", "index": "0"},
			},
		},
		{
			name: "empty vector",
			entry: &Entry{
				ID: "ghi",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalEntry(tt.entry)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalEntry(data)
			require.NoError(t, err)
			assert.Equal(t, tt.entry.ID, decoded.ID)
			assert.Equal(t, tt.entry.Vector, decoded.Vector)
			assert.Equal(t, tt.entry.Text, decoded.Text)
			assert.Equal(t, tt.entry.Metadata, decoded.Metadata)
		})
	}
}

func TestUnmarshalEntry_Truncated(t *testing.T) {
	entry := &Entry{
		ID:     "abc",
		Vector: core.Embedding{0.1, 0.2, 0.3},
		Text:   "hello",
	}
	data := MarshalEntry(entry)

	for _, cut := range []int{0, 1, len(data) / 2, len(data) - 1} {
		_, err := UnmarshalEntry(data[:cut])
		assert.Error(t, err, "cut at %d", cut)
		assert.ErrorIs(t, err, ErrSerializationFailed)
	}
}

func TestEntrySegment(t *testing.T) {
	bare := &Entry{ID: "a", Vector: core.Embedding{1}}
	assert.Nil(t, bare.Segment())

	withText := &Entry{ID: "b", Text: "hello"}
	segment := withText.Segment()
	require.NotNil(t, segment)
	assert.Equal(t, "hello", segment.Text)
}
