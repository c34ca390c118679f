// Package ingestion provides the pipeline that turns documents into stored
// embeddings.
//
// The Ingestor splits documents into segments, drops duplicate segments,
// and embeds the remainder in batches on a worker pool before writing them
// to an embedding store. IngestDocuments blocks until every batch has been
// stored, so callers can search immediately afterwards.
package ingestion
