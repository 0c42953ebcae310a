package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrCollectionNotFound signals a missing document collection.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrBatchSizeMismatch signals a batch insert whose ids, vectors, texts
	// and metadata counts disagree.
	ErrBatchSizeMismatch = errors.New("batch size mismatch")
	// ErrInvalidQuery signals invalid search parameters.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrRetrievalFailed signals a document store failure during a search.
	// Store failures are never flattened into empty result sets: downstream
	// synthesis cannot tell "nothing matched" from "the store is down" and
	// would hallucinate from missing grounding data.
	ErrRetrievalFailed = errors.New("retrieval failed")

	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrSynthesisFailed signals a completion provider failure.
	ErrSynthesisFailed = errors.New("synthesis failed")
	// ErrInvalidResponse signals a model response that failed schema validation.
	ErrInvalidResponse = errors.New("invalid model response")
)
