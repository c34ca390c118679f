package core

// Document is a source text with optional metadata, typically loaded from a
// file before splitting and embedding.
type Document struct {
	Text     string
	Metadata map[string]string
}

// NewDocument creates a document with a copy of the given metadata.
func NewDocument(text string, metadata map[string]string) Document {
	return Document{Text: text, Metadata: copyMetadata(metadata)}
}

// TextSegment is a chunk of a document, small enough to embed as one unit.
// Metadata is inherited from the source document.
type TextSegment struct {
	Text     string
	Metadata map[string]string
}

// NewTextSegment creates a segment with a copy of the given metadata.
func NewTextSegment(text string, metadata map[string]string) TextSegment {
	return TextSegment{Text: text, Metadata: copyMetadata(metadata)}
}

func copyMetadata(metadata map[string]string) map[string]string {
	if metadata == nil {
		return nil
	}
	out := make(map[string]string, len(metadata))
	for k, v := range metadata {
		out[k] = v
	}
	return out
}
