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

import "math"

// Embedding is a numeric vector representation of text.
type Embedding []float32

// Dim returns the dimensionality of the embedding.
func (e Embedding) Dim() int {
	return len(e)
}

// Normalized returns a unit-length copy of the embedding.
// A zero vector is returned unchanged.
func (e Embedding) Normalized() Embedding {
	var sumSquares float64
	for _, v := range e {
		sumSquares += float64(v) * float64(v)
	}
	out := make(Embedding, len(e))
	if sumSquares == 0 {
		copy(out, e)
		return out
	}
	norm := math.Sqrt(sumSquares)
	for i, v := range e {
		out[i] = float32(float64(v) / norm)
	}
	return out
}

// CosineSimilarity computes the cosine similarity between two embeddings,
// in the range [-1, 1]. Returns ErrDimensionMismatch if the vectors have
// different lengths and 0 for zero-length or zero-norm vectors.
func CosineSimilarity(a, b Embedding) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// RelevanceScore maps a cosine similarity in [-1, 1] to a relevance score
// in [0, 1], where 0 means not relevant and 1 means highly relevant.
func RelevanceScore(cosineSimilarity float64) float64 {
	return (cosineSimilarity + 1) / 2
}
