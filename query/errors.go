package query

import "errors"

var (
	// ErrExtractorRequired is returned when a pipeline is constructed
	// without a field extractor.
	ErrExtractorRequired = errors.New("field extractor is required")

	// ErrResolverRequired is returned when a pipeline is constructed
	// without a location resolver.
	ErrResolverRequired = errors.New("location resolver is required")

	// ErrNoPendingContext is returned when Resume is called without a
	// disambiguation context.
	ErrNoPendingContext = errors.New("no pending disambiguation context")
)
