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


// Package google implements places.Provider against the Google Maps
// Platform: Places nearby search, the Distance Matrix API, and place
// details.
package google

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"googlemaps.github.io/maps"

	"github.com/poiesic/placefinder/core"
	"github.com/poiesic/placefinder/places"
)

// Provider wraps a Google Maps API client.
type Provider struct {
	client *maps.Client
	logger *slog.Logger
}

var _ places.Provider = (*Provider)(nil)

// travelModes maps our travel modes onto the Distance Matrix API's.
var travelModes = map[core.TravelMode]maps.Mode{
	core.ModeWalking:   maps.TravelModeWalking,
	core.ModeDriving:   maps.TravelModeDriving,
	core.ModeBicycling: maps.TravelModeBicycling,
	core.ModeTransit:   maps.TravelModeTransit,
}

// detailFields limits place detail responses to what ranking needs.
var detailFields = []maps.PlaceDetailsFieldMask{
	maps.PlaceDetailsFieldMaskName,
	maps.PlaceDetailsFieldMaskFormattedAddress,
	maps.PlaceDetailsFieldMaskRatings,
	maps.PlaceDetailsFieldMaskPriceLevel,
	maps.PlaceDetailsFieldMaskReviews,
	maps.PlaceDetailsFieldMaskFormattedPhoneNumber,
	maps.PlaceDetailsFieldMaskWebsite,
	maps.PlaceDetailsFieldMaskOpeningHours,
	maps.PlaceDetailsFieldMaskGeometry,
}

// NewProvider creates a provider authenticated with the given API key.
func NewProvider(apiKey string, logger *slog.Logger) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google maps api key is required")
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		client: client,
		logger: logger.With("component", "google_places"),
	}, nil
}

// NearbySearch returns one page of venues matching keyword around center.
func (p *Provider) NearbySearch(ctx context.Context, center core.Coordinates, keyword string, radiusMeters int, pageToken string) ([]places.Summary, string, error) {
	req := &maps.NearbySearchRequest{
		Location:  &maps.LatLng{Lat: center.Lat, Lng: center.Lon},
		Radius:    uint(radiusMeters),
		Keyword:   keyword,
		PageToken: pageToken,
	}

	resp, err := p.client.NearbySearch(ctx, req)
	if err != nil {
		return nil, "", fmt.Errorf("nearby search: %w", err)
	}

	summaries := make([]places.Summary, 0, len(resp.Results))
	for _, result := range resp.Results {
		summaries = append(summaries, places.Summary{
			PlaceID: result.PlaceID,
			Name:    result.Name,
			Address: result.Vicinity,
			Rating:  float64(result.Rating),
			Location: core.Coordinates{
				Lat: result.Geometry.Location.Lat,
				Lon: result.Geometry.Location.Lng,
			},
		})
	}

	p.logger.Debug("nearby search page", "keyword", keyword, "results", len(summaries))
	return summaries, resp.NextPageToken, nil
}

// TravelTimes returns travel durations in seconds from origin to each
// destination. Elements the API cannot route are reported as unreachable.
func (p *Provider) TravelTimes(ctx context.Context, origin core.Coordinates, destinations []core.Coordinates, mode core.TravelMode) ([]float64, error) {
	if len(destinations) == 0 {
		return nil, nil
	}

	apiMode, ok := travelModes[mode]
	if !ok {
		apiMode = maps.TravelModeWalking
	}

	dests := make([]string, len(destinations))
	for i, d := range destinations {
		dests[i] = fmt.Sprintf("%f,%f", d.Lat, d.Lon)
	}

	resp, err := p.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{fmt.Sprintf("%f,%f", origin.Lat, origin.Lon)},
		Destinations: dests,
		Mode:         apiMode,
	})
	if err != nil {
		return nil, fmt.Errorf("distance matrix: %w", err)
	}
	if len(resp.Rows) == 0 {
		return nil, fmt.Errorf("distance matrix returned no rows")
	}

	seconds := make([]float64, len(destinations))
	for i, element := range resp.Rows[0].Elements {
		if i >= len(seconds) {
			break
		}
		if element.Status != "OK" {
			seconds[i] = math.Inf(1)
			continue
		}
		seconds[i] = element.Duration.Seconds()
	}

	return seconds, nil
}

// PlaceDetails returns the full venue record for a place ID.
func (p *Provider) PlaceDetails(ctx context.Context, placeID string) (*core.Venue, error) {
	resp, err := p.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields:  detailFields,
	})
	if err != nil {
		return nil, fmt.Errorf("place details: %w", err)
	}

	venue := &core.Venue{
		Id:         core.IDFromContent(resp.Name + "|" + resp.FormattedAddress),
		Name:       resp.Name,
		Address:    resp.FormattedAddress,
		Rating:     float64(resp.Rating),
		PriceLevel: resp.PriceLevel,
		Phone:      resp.FormattedPhoneNumber,
		Website:    resp.Website,
		Location: &core.Coordinates{
			Lat: resp.Geometry.Location.Lat,
			Lon: resp.Geometry.Location.Lng,
		},
	}

	if resp.OpeningHours != nil {
		venue.OpeningHours = resp.OpeningHours.WeekdayText
	}

	for _, review := range resp.Reviews {
		venue.Reviews = append(venue.Reviews, core.Review{
			Author:    review.AuthorName,
			Rating:    float64(review.Rating),
			Text:      review.Text,
			Time:      review.RelativeTimeDescription,
			Timestamp: int64(review.Time),
		})
	}

	return venue, nil
}
