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


package places

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/placefinder/core"
)

const (
	maxPages           = 3
	matrixChunkSize    = 25
	maxReviewsPerPlace = 5

	// defaultPageDelay is the wait before reusing a page token. Google's
	// next_page_token takes a few seconds to become valid; requesting the
	// next page immediately fails with INVALID_REQUEST.
	defaultPageDelay = 2 * time.Second
)

// speedFactors approximate travel speed in meters per second per mode, used
// to turn a time budget into a search radius.
var speedFactors = map[core.TravelMode]float64{
	core.ModeWalking:   1.39,
	core.ModeDriving:   16,
	core.ModeTransit:   9,
	core.ModeBicycling: 5,
}

// Request describes one venue search.
type Request struct {
	// Center is the resolved search origin.
	Center core.Coordinates

	// Keyword is the kind of place to search for, e.g. "coffee shop".
	Keyword string

	// Travel is the validated travel budget. Value is in minutes.
	Travel core.TravelDuration

	// MinimumStars filters venues below FuzzyRating when non-nil.
	MinimumStars *core.StarRequirement
}

// Searcher finds venues reachable within a travel budget. It pages through
// nearby-search results, measures travel times in bulk, filters, and then
// fetches details for the survivors concurrently.
type Searcher struct {
	provider  Provider
	pool      *ants.Pool
	pageDelay time.Duration
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithPoolSize sets the worker pool size for concurrent detail fetches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}

		if s.pool != nil {
			s.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithPageDelay sets the wait before a page token is reused.
// Default is 2 seconds, per the token's warm-up time.
func WithPageDelay(d time.Duration) Option {
	return func(s *Searcher) error {
		if d < 0 {
			d = 0
		}
		s.pageDelay = d
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a searcher backed by the given provider.
func NewSearcher(provider Provider, opts ...Option) (*Searcher, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		provider:  provider,
		pool:      pool,
		pageDelay: defaultPageDelay,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			pool.Release()
			return nil, err
		}
	}

	s.logger = s.logger.With("component", "places_searcher")
	return s, nil
}

// Close releases the worker pool.
func (s *Searcher) Close() {
	s.pool.Release()
}

// Search returns venues matching the request, each annotated with its travel
// time from the request center. Venues outside the travel budget or below
// the fuzzy rating floor are dropped before details are fetched.
func (s *Searcher) Search(ctx context.Context, req Request) ([]*core.Venue, error) {
	maxSeconds := req.Travel.Value * 60
	radius := SearchRadius(req.Travel.Mode, maxSeconds)

	summaries, err := s.collectSummaries(ctx, req.Center, req.Keyword, radius)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, nil
	}

	travelSeconds := s.measureTravelTimes(ctx, req.Center, summaries, req.Travel.Mode)

	var kept []Summary
	var keptSeconds []float64
	for i, summary := range summaries {
		if travelSeconds[i] > maxSeconds {
			continue
		}
		if req.MinimumStars != nil && summary.Rating < req.MinimumStars.FuzzyRating {
			continue
		}
		kept = append(kept, summary)
		keptSeconds = append(keptSeconds, travelSeconds[i])
	}

	s.logger.Debug("filtered venues",
		"found", len(summaries),
		"kept", len(kept),
		"radius_m", radius,
		"max_seconds", maxSeconds)

	return s.fetchDetails(ctx, kept, keptSeconds, req.Travel.Mode), nil
}

// SearchRadius converts a travel budget into a search radius in meters using
// the per-mode speed factor.
func SearchRadius(mode core.TravelMode, maxSeconds float64) int {
	factor, ok := speedFactors[mode]
	if !ok {
		factor = speedFactors[core.ModeWalking]
	}
	return int(factor * maxSeconds)
}

// collectSummaries pages through nearby-search results, up to maxPages.
// A fresh page token is not yet valid on the provider side, so each page
// after the first waits pageDelay before the token is consumed.
func (s *Searcher) collectSummaries(ctx context.Context, center core.Coordinates, keyword string, radius int) ([]Summary, error) {
	var all []Summary
	pageToken := ""

	for page := 0; page < maxPages; page++ {
		if page > 0 {
			if err := sleepCtx(ctx, s.pageDelay); err != nil {
				return nil, err
			}
		}

		summaries, next, err := s.provider.NearbySearch(ctx, center, keyword, radius, pageToken)
		if err != nil {
			if page == 0 {
				return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
			}
			// Later pages are best-effort.
			s.logger.Warn("nearby search page failed", "page", page, "err", err)
			break
		}
		all = append(all, summaries...)
		if next == "" {
			break
		}
		pageToken = next
	}

	return all, nil
}

// measureTravelTimes queries travel durations in chunks. A failed chunk marks
// its venues unreachable rather than failing the search.
func (s *Searcher) measureTravelTimes(ctx context.Context, origin core.Coordinates, summaries []Summary, mode core.TravelMode) []float64 {
	seconds := make([]float64, len(summaries))

	for start := 0; start < len(summaries); start += matrixChunkSize {
		end := start + matrixChunkSize
		if end > len(summaries) {
			end = len(summaries)
		}

		destinations := make([]core.Coordinates, end-start)
		for i, summary := range summaries[start:end] {
			destinations[i] = summary.Location
		}

		chunk, err := s.provider.TravelTimes(ctx, origin, destinations, mode)
		if err != nil || len(chunk) != len(destinations) {
			s.logger.Warn("travel time chunk failed", "start", start, "err", err)
			for i := start; i < end; i++ {
				seconds[i] = math.Inf(1)
			}
			continue
		}
		copy(seconds[start:end], chunk)
	}

	return seconds
}

// fetchDetails retrieves full venue records concurrently. A venue whose
// detail fetch fails is dropped from the result set.
func (s *Searcher) fetchDetails(ctx context.Context, summaries []Summary, travelSeconds []float64, mode core.TravelMode) []*core.Venue {
	venues := make([]*core.Venue, len(summaries))
	var wg sync.WaitGroup

	for i := range summaries {
		i := i
		wg.Add(1)
		if err := s.pool.Submit(func() {
			defer wg.Done()
			venue, err := s.provider.PlaceDetails(ctx, summaries[i].PlaceID)
			if err != nil {
				s.logger.Warn("place details failed", "place_id", summaries[i].PlaceID, "err", err)
				return
			}
			venue.TravelTime = travelSeconds[i] / 60
			venue.TravelMode = mode
			trimReviews(venue)
			venues[i] = venue
		}); err != nil {
			wg.Done()
			s.logger.Warn("failed to submit detail fetch", "err", err)
		}
	}
	wg.Wait()

	result := make([]*core.Venue, 0, len(venues))
	for _, venue := range venues {
		if venue != nil {
			result = append(result, venue)
		}
	}
	return result
}

// sleepCtx sleeps for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// trimReviews keeps the most recent reviews, newest first.
func trimReviews(venue *core.Venue) {
	sort.SliceStable(venue.Reviews, func(i, j int) bool {
		return venue.Reviews[i].Timestamp > venue.Reviews[j].Timestamp
	})
	if len(venue.Reviews) > maxReviewsPerPlace {
		venue.Reviews = venue.Reviews[:maxReviewsPerPlace]
	}
}
