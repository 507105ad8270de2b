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


// Package nominatim implements geo.Geocoder against the OpenStreetMap
// Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/poiesic/placefinder/geo"
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "placefinder/1.0"
)

// Geocoder queries the Nominatim search endpoint. Nominatim's usage policy
// requires a descriptive User-Agent identifying the application.
type Geocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *slog.Logger
}

// Option configures a Geocoder.
type Option func(*Geocoder)

// WithBaseURL points the geocoder at a different Nominatim instance.
func WithBaseURL(baseURL string) Option {
	return func(g *Geocoder) {
		g.baseURL = baseURL
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(g *Geocoder) {
		g.userAgent = userAgent
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Geocoder) {
		g.client = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Geocoder) {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
	}
}

// New creates a Nominatim-backed geocoder.
func New(opts ...Option) geo.Geocoder {
	g := &Geocoder{
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		client:    &http.Client{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "nominatim")
	return g
}

// searchResult is the subset of the jsonv2 response we use. Nominatim
// serializes coordinates as strings.
type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	AddressType string `json:"addresstype"`
	Type        string `json:"type"`
}

// Geocode searches for query and returns up to limit candidates. The timeout
// bounds the whole HTTP round trip.
func (g *Geocoder) Geocode(ctx context.Context, query string, limit int, timeout time.Duration) ([]geo.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", geo.ErrGeocoderTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", geo.ErrGeocoderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: status %d", geo.ErrGeocoderUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from nominatim", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", geo.ErrGeocoderUnavailable, err)
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	candidates := make([]geo.Candidate, 0, len(results))
	for _, res := range results {
		lat, latErr := strconv.ParseFloat(res.Lat, 64)
		lon, lonErr := strconv.ParseFloat(res.Lon, 64)
		if latErr != nil || lonErr != nil {
			g.logger.Warn("skipping candidate with bad coordinates", "display_name", res.DisplayName)
			continue
		}
		rawType := res.AddressType
		if rawType == "" {
			rawType = res.Type
		}
		candidates = append(candidates, geo.Candidate{
			Address: res.DisplayName,
			Lat:     lat,
			Lon:     lon,
			RawType: rawType,
		})
	}

	g.logger.Debug("geocoded query", "query", query, "candidates", len(candidates))
	return candidates, nil
}
