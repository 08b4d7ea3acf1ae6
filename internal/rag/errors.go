package rag

import "errors"

var (
	// ErrEmbeddingUnavailable indicates the embedding provider failed or
	// timed out. Retrieval cannot proceed for the turn; callers degrade to a
	// zero-evidence context instead of surfacing the failure.
	ErrEmbeddingUnavailable = errors.New("rag: embedding unavailable")

	// ErrSearchUnavailable indicates a collection search failed. Treated as
	// zero matches from that collection.
	ErrSearchUnavailable = errors.New("rag: search unavailable")

	// ErrWriteFailed indicates a record insert or update failed after retry.
	ErrWriteFailed = errors.New("rag: write failed")

	// ErrInvalidRecord indicates a store request failed validation before
	// any external call was made.
	ErrInvalidRecord = errors.New("rag: invalid record")

	// ErrDimensionMismatch indicates the embedding provider and vector store
	// disagree on vector dimensionality. This is an operational setup error
	// surfaced at startup, never handled per-request.
	ErrDimensionMismatch = errors.New("rag: embedding dimension mismatch")
)
