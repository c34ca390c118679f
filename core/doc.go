// Package core defines the shared domain model for llmkit: chat messages,
// tool specifications, model responses with token usage, embeddings, and
// text segments. Provider adapters translate vendor request/response shapes
// into these types; everything above the adapters depends only on this
// package and the interfaces in package model.
package core
