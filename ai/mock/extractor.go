package mock

import (
	"context"
	"strings"

	"github.com/poiesic/placefinder/core"
)

// MockFieldExtractor is a test double for ai.FieldExtractor.
// It allows custom behavior injection via function fields.
type MockFieldExtractor struct {
	// ExtractFieldsFunc is called by ExtractFields if set.
	// If nil, uses default naive phrase extraction.
	ExtractFieldsFunc func(ctx context.Context, query string) (*core.ExtractedFields, error)

	callCount int
}

// NewMockFieldExtractor creates a mock field extractor with default behavior.
// Note: Returns concrete type to allow test assertions via CallCount().
func NewMockFieldExtractor() *MockFieldExtractor {
	return &MockFieldExtractor{}
}

// ExtractFields extracts simple mock fields from a query.
// Default behavior: everything after a trailing "in " becomes the location,
// and a leading noun phrase becomes the place to search. Tests needing real
// structure should set ExtractFieldsFunc.
func (m *MockFieldExtractor) ExtractFields(ctx context.Context, query string) (*core.ExtractedFields, error) {
	m.callCount++

	if m.ExtractFieldsFunc != nil {
		return m.ExtractFieldsFunc(ctx, query)
	}

	fields := &core.ExtractedFields{}

	lower := strings.ToLower(query)
	if idx := strings.LastIndex(lower, " in "); idx >= 0 {
		fields.Location = strings.Trim(query[idx+4:], " .?!")
		fields.PlaceToSearch = strings.TrimSpace(query[:idx])
	} else if strings.Contains(lower, "near me") {
		fields.Location = "near me"
	}

	return fields, nil
}

// CallCount returns the number of times ExtractFields was called.
func (m *MockFieldExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockFieldExtractor) Reset() {
	m.callCount = 0
	m.ExtractFieldsFunc = nil
}
