// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package mock provides a test double for the geo.Geocoder interface.
package mock

import (
	"context"
	"time"

	"github.com/poiesic/placefinder/geo"
)

// MockGeocoder implements geo.Geocoder for testing. Set GeocodeFunc to
// control behavior; by default it returns no candidates.
type MockGeocoder struct {
	GeocodeFunc func(ctx context.Context, query string, limit int, timeout time.Duration) ([]geo.Candidate, error)

	callCount int
}

// NewMockGeocoder creates a mock geocoder with default behavior.
func NewMockGeocoder() *MockGeocoder {
	return &MockGeocoder{}
}

// Geocode records the call and delegates to GeocodeFunc if set.
func (m *MockGeocoder) Geocode(ctx context.Context, query string, limit int, timeout time.Duration) ([]geo.Candidate, error) {
	m.callCount++
	if m.GeocodeFunc != nil {
		return m.GeocodeFunc(ctx, query, limit, timeout)
	}
	return nil, nil
}

// CallCount returns the number of times Geocode has been called.
func (m *MockGeocoder) CallCount() int {
	return m.callCount
}

// Reset clears the call count.
func (m *MockGeocoder) Reset() {
	m.callCount = 0
}
