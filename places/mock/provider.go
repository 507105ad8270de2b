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


// Package mock provides a test double for the places.Provider interface.
package mock

import (
	"context"

	"github.com/poiesic/placefinder/core"
	"github.com/poiesic/placefinder/places"
)

// MockProvider implements places.Provider for testing. Set the Func fields
// to control behavior; defaults return empty results.
type MockProvider struct {
	NearbySearchFunc func(ctx context.Context, center core.Coordinates, keyword string, radiusMeters int, pageToken string) ([]places.Summary, string, error)
	TravelTimesFunc  func(ctx context.Context, origin core.Coordinates, destinations []core.Coordinates, mode core.TravelMode) ([]float64, error)
	PlaceDetailsFunc func(ctx context.Context, placeID string) (*core.Venue, error)

	nearbyCalls  int
	travelCalls  int
	detailsCalls int
}

// NewMockProvider creates a mock provider with default behavior.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// NearbySearch records the call and delegates to NearbySearchFunc if set.
func (m *MockProvider) NearbySearch(ctx context.Context, center core.Coordinates, keyword string, radiusMeters int, pageToken string) ([]places.Summary, string, error) {
	m.nearbyCalls++
	if m.NearbySearchFunc != nil {
		return m.NearbySearchFunc(ctx, center, keyword, radiusMeters, pageToken)
	}
	return nil, "", nil
}

// TravelTimes records the call and delegates to TravelTimesFunc if set.
// The default reports every destination as one minute away.
func (m *MockProvider) TravelTimes(ctx context.Context, origin core.Coordinates, destinations []core.Coordinates, mode core.TravelMode) ([]float64, error) {
	m.travelCalls++
	if m.TravelTimesFunc != nil {
		return m.TravelTimesFunc(ctx, origin, destinations, mode)
	}
	seconds := make([]float64, len(destinations))
	for i := range seconds {
		seconds[i] = 60
	}
	return seconds, nil
}

// PlaceDetails records the call and delegates to PlaceDetailsFunc if set.
// The default returns a minimal venue derived from the place ID.
func (m *MockProvider) PlaceDetails(ctx context.Context, placeID string) (*core.Venue, error) {
	m.detailsCalls++
	if m.PlaceDetailsFunc != nil {
		return m.PlaceDetailsFunc(ctx, placeID)
	}
	return &core.Venue{
		Id:     core.IDFromContent(placeID),
		Name:   placeID,
		Rating: 4.0,
	}, nil
}

// NearbyCallCount returns the number of NearbySearch calls.
func (m *MockProvider) NearbyCallCount() int {
	return m.nearbyCalls
}

// TravelCallCount returns the number of TravelTimes calls.
func (m *MockProvider) TravelCallCount() int {
	return m.travelCalls
}

// DetailsCallCount returns the number of PlaceDetails calls.
func (m *MockProvider) DetailsCallCount() int {
	return m.detailsCalls
}

// Reset clears all call counts.
func (m *MockProvider) Reset() {
	m.nearbyCalls = 0
	m.travelCalls = 0
	m.detailsCalls = 0
}
