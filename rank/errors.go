package rank

import "errors"

var (
	// ErrEmbedderRequired is returned when a ranker is constructed without
	// an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrInvalidWeights is returned when custom weights do not sum to 1.
	ErrInvalidWeights = errors.New("ranking weights must sum to 1")

	// ErrEmbeddingFailed is returned when keyword or review embedding fails.
	ErrEmbeddingFailed = errors.New("embedding failed")
)
