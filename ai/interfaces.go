package ai

import (
	"context"

	"github.com/poiesic/placefinder/core"
)

// Embedder generates vector embeddings from text for semantic similarity.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// FieldExtractor turns a free-text local-search request into structured
// search fields. Implementations must be thread-safe for concurrent use.
type FieldExtractor interface {
	// ExtractFields analyzes a user query and extracts the location, place
	// type, travel budget, rating requirement, and any additional requests.
	// Fields absent from the query are left at their zero value.
	// Returns an error if extraction fails; callers surface a generic
	// rephrase prompt rather than retrying.
	ExtractFields(ctx context.Context, query string) (*core.ExtractedFields, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and FieldExtractor instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// FieldExtractor returns the query field extraction service.
	// The returned FieldExtractor is safe for concurrent use.
	FieldExtractor() FieldExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
