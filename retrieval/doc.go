// Package retrieval finds stored text segments relevant to a natural
// language query.
//
// The Retriever embeds the query with the same model used at ingestion time
// and asks the embedding store for the closest entries. Scores are
// relevance scores in [0, 1].
package retrieval
