// Package ollama implements chat and embedding models served by a local or
// remote Ollama instance, speaking its native API.
//
// Streaming uses the newline-delimited JSON protocol of /api/chat: one JSON
// object per generated fragment, with the final object carrying done=true
// plus prompt and generation token counts.
package ollama
