// Package document loads source documents and splits them into text
// segments sized for embedding.
//
// Loaders attach provenance metadata (source path, file name) that flows
// through splitting into the embedding store, so search results can point
// back at their origin.
package document
