package places

import "errors"

var (
	// ErrProviderRequired is returned when a searcher is constructed
	// without a provider.
	ErrProviderRequired = errors.New("places provider is required")

	// ErrSearchFailed is returned when the initial nearby search fails.
	ErrSearchFailed = errors.New("nearby search failed")
)
