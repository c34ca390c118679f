// Package mock provides test double implementations of the model
// interfaces.
//
// This package contains mock implementations of model.EmbeddingModel,
// model.ChatModel, and model.StreamingChatModel for use in unit tests. The
// mocks allow tests to run without live model servers and enable
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	embedder := mock.NewEmbedder()
//	embedding, err := embedder.EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) (core.Embedding, error) {
//	    return core.Embedding{0.1, 0.2, 0.3}, nil
//	}
//
//	// Scripted chat responses
//	chat := mock.NewChatModel("first reply", "second reply")
//
// # Default Behavior
//
//   - Embedder: returns deterministic unit vectors derived from a text hash,
//     so equal texts embed equally
//   - ChatModel: replays its scripted responses in order, streaming them as
//     whitespace-delimited tokens
package mock
