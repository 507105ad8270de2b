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


package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/poiesic/placefinder/cache"
	"github.com/poiesic/placefinder/core"
)

const (
	defaultMaxResults  = 5
	defaultRetries     = 2
	defaultTimeout     = 5 * time.Second
	defaultRetryDelay  = 1 * time.Second
	defaultScoreCutoff = 80
	cacheTTL           = time.Hour
)

// Resolver resolves free-text locations to coordinates. Ambiguity is not an
// error: when several candidates match, the result carries an options list
// for the caller to disambiguate.
//
// Resolution is an ordered chain of strategies; each either decides or falls
// through to the next:
//
//  1. anchor rewrite for "near me"
//  2. alias table rewrite to canonical names
//  3. cache lookup
//  4. fuzzy match against the reference gazetteer
//  5. live geocoding with retries
type Resolver struct {
	geocoder    Geocoder
	gazetteer   []GazetteerEntry
	aliases     map[string]string
	anchor      string
	cache       cache.Cache
	maxResults  int
	retries     int
	timeout     time.Duration
	retryDelay  time.Duration
	scoreCutoff int
	logger      *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithGazetteer replaces the reference gazetteer.
func WithGazetteer(entries []GazetteerEntry) Option {
	return func(r *Resolver) error {
		r.gazetteer = entries
		return nil
	}
}

// WithAliases replaces the alias table. Keys are lowercased.
func WithAliases(aliases map[string]string) Option {
	return func(r *Resolver) error {
		normalized := make(map[string]string, len(aliases))
		for k, v := range aliases {
			normalized[strings.ToLower(k)] = v
		}
		r.aliases = normalized
		return nil
	}
}

// WithAnchor sets the fallback location substituted for "near me".
// An empty anchor disables the rewrite.
func WithAnchor(anchor string) Option {
	return func(r *Resolver) error {
		r.anchor = anchor
		return nil
	}
}

// WithCache attaches an optional location cache.
func WithCache(c cache.Cache) Option {
	return func(r *Resolver) error {
		r.cache = c
		return nil
	}
}

// WithMaxResults caps the number of geocoder candidates requested.
func WithMaxResults(n int) Option {
	return func(r *Resolver) error {
		if n < 1 {
			n = 1
		}
		r.maxResults = n
		return nil
	}
}

// WithRetries sets the number of retries after a transient geocoder failure.
// The geocoder is attempted at most retries+1 times.
func WithRetries(n int) Option {
	return func(r *Resolver) error {
		if n < 0 {
			n = 0
		}
		r.retries = n
		return nil
	}
}

// WithTimeout sets the per-request geocoder timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) error {
		r.timeout = d
		return nil
	}
}

// WithRetryDelay sets the fixed sleep between geocoder attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(r *Resolver) error {
		r.retryDelay = d
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewResolver creates a resolver backed by the given geocoder.
func NewResolver(geocoder Geocoder, opts ...Option) (*Resolver, error) {
	if geocoder == nil {
		return nil, ErrGeocoderRequired
	}

	r := &Resolver{
		geocoder:    geocoder,
		gazetteer:   DefaultGazetteer(),
		aliases:     DefaultAliases(),
		anchor:      "New York City",
		maxResults:  defaultMaxResults,
		retries:     defaultRetries,
		timeout:     defaultTimeout,
		retryDelay:  defaultRetryDelay,
		scoreCutoff: defaultScoreCutoff,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Resolve resolves a location query to a LocationResult.
//
// It never returns an error for business ambiguity: multiple candidates
// produce a result with Options populated. Errors are reserved for
// unrecoverable failures: zero geocoder candidates (ErrNoResultsFound) or
// exhausted retries (ErrGeocodingFailed).
func (r *Resolver) Resolve(ctx context.Context, query string, userCoords *core.Coordinates) (*core.LocationResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &core.LocationResult{}, nil
	}

	// "near me" is a design placeholder for device geolocation: rewrite to
	// the configured anchor before any table lookup.
	if r.anchor != "" && strings.EqualFold(query, "near me") {
		r.logger.Debug("rewriting near-me query to anchor", "anchor", r.anchor)
		query = r.anchor
	}

	// Alias table rewrite happens before the cache so an alias and its
	// canonical form share one cache entry.
	if canonical, ok := r.aliases[strings.ToLower(query)]; ok {
		r.logger.Debug("alias rewrite", "query", query, "canonical", canonical)
		query = canonical
	}

	type strategy func(ctx context.Context, query string, userCoords *core.Coordinates) (*core.LocationResult, error)
	for _, resolve := range []strategy{r.fromCache, r.fromGazetteer, r.fromGeocoder} {
		result, err := resolve(ctx, query, userCoords)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}

	// fromGeocoder always decides; this is unreachable.
	return nil, fmt.Errorf("%w: %q", ErrNoResultsFound, query)
}

// fromCache returns a previously resolved result, or nil on miss.
// Cache failures are logged and treated as misses.
func (r *Resolver) fromCache(ctx context.Context, query string, _ *core.Coordinates) (*core.LocationResult, error) {
	if r.cache == nil {
		return nil, nil
	}

	value, err := r.cache.Get(ctx, cacheKey(query))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			r.logger.Warn("cache lookup failed", "query", query, "err", err)
		}
		return nil, nil
	}

	var result core.LocationResult
	if err := json.Unmarshal([]byte(value), &result); err != nil {
		r.logger.Warn("discarding undecodable cache entry", "query", query, "err", err)
		return nil, nil
	}

	r.logger.Debug("cache hit", "query", query, "value", result.DisplayValue)
	return &result, nil
}

// fromGazetteer fuzzy-matches the query against the reference gazetteer,
// accepting only scores at or above the cutoff.
func (r *Resolver) fromGazetteer(ctx context.Context, query string, _ *core.Coordinates) (*core.LocationResult, error) {
	names := make([]string, len(r.gazetteer))
	for i, entry := range r.gazetteer {
		names[i] = entry.Name
	}

	name, score, ok := BestMatch(query, names, r.scoreCutoff)
	if !ok {
		return nil, nil
	}

	for _, entry := range r.gazetteer {
		if entry.Name != name {
			continue
		}
		r.logger.Debug("gazetteer match", "query", query, "name", name, "score", score)
		result := &core.LocationResult{
			Kind:         entry.Kind,
			DisplayValue: entry.Name,
			Coordinates:  &core.Coordinates{Lat: entry.Coordinates.Lat, Lon: entry.Coordinates.Lon},
		}
		r.writeThrough(ctx, query, result)
		return result, nil
	}
	return nil, nil
}

// fromGeocoder performs a live geocoding lookup with a bounded retry loop.
func (r *Resolver) fromGeocoder(ctx context.Context, query string, userCoords *core.Coordinates) (*core.LocationResult, error) {
	var candidates []Candidate
	var lastErr error

	for attempt := 0; attempt <= r.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidates, lastErr = r.geocoder.Geocode(ctx, query, r.maxResults, r.timeout)
		if lastErr == nil {
			break
		}
		if !transient(lastErr) {
			return nil, fmt.Errorf("%w: %v", ErrGeocodingFailed, lastErr)
		}

		r.logger.Warn("transient geocoder failure", "query", query, "attempt", attempt+1, "err", lastErr)
		if attempt == r.retries {
			return nil, fmt.Errorf("%w after %d retries: %v", ErrGeocodingFailed, r.retries, lastErr)
		}
		if err := sleepCtx(ctx, r.retryDelay); err != nil {
			return nil, err
		}
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoResultsFound, query)
	}

	if len(candidates) == 1 {
		c := candidates[0]
		result := &core.LocationResult{
			Kind:         kindFromRawType(c.RawType),
			DisplayValue: c.Address,
			Coordinates:  &core.Coordinates{Lat: c.Lat, Lon: c.Lon},
		}
		r.writeThrough(ctx, query, result)
		return result, nil
	}

	// Multiple candidates: surface an options list for disambiguation.
	options := make([]core.LocationOption, len(candidates))
	for i, c := range candidates {
		options[i] = core.LocationOption{
			Kind:         kindFromRawType(c.RawType),
			DisplayValue: c.Address,
			Coordinates:  core.Coordinates{Lat: c.Lat, Lon: c.Lon},
		}
	}

	if userCoords != nil {
		sort.SliceStable(options, func(i, j int) bool {
			return Haversine(*userCoords, options[i].Coordinates) < Haversine(*userCoords, options[j].Coordinates)
		})
	}

	return &core.LocationResult{Options: options}, nil
}

// writeThrough caches a resolved result. Failures are logged, never fatal.
func (r *Resolver) writeThrough(ctx context.Context, query string, result *core.LocationResult) {
	if r.cache == nil {
		return
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		r.logger.Warn("failed to encode result for cache", "query", query, "err", err)
		return
	}
	if err := r.cache.SetEx(ctx, cacheKey(query), cacheTTL, string(encoded)); err != nil {
		r.logger.Warn("cache write failed", "query", query, "err", err)
	}
}

// kindFromRawType tags a geocoder candidate as city or landmark based on its
// raw provider type string.
func kindFromRawType(rawType string) core.LocationKind {
	if strings.Contains(strings.ToLower(rawType), "city") {
		return core.KindCity
	}
	return core.KindLandmark
}

func cacheKey(query string) string {
	return "location:" + strings.ToLower(query)
}

// sleepCtx sleeps for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
