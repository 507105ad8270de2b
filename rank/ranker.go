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


// Package rank orders venues by a weighted combination of review relevance,
// star rating, and travel time. Review relevance is measured by embedding
// both the user's keywords and the venue reviews and averaging their cosine
// similarity.
package rank

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/poiesic/placefinder/ai"
	"github.com/poiesic/placefinder/core"
)

// weightTolerance is the allowed deviation of a custom weight sum from 1.
const weightTolerance = 0.01

// Weights controls the contribution of each score component.
// A zero value asks for the defaults.
type Weights struct {
	Similarity float64
	Rating     float64
	TravelTime float64
}

// DefaultWeights returns the standard weighting. Without keywords there is
// no similarity signal, so its weight is redistributed.
func DefaultWeights(hasKeywords bool) Weights {
	if hasKeywords {
		return Weights{Similarity: 0.5, Rating: 0.3, TravelTime: 0.2}
	}
	return Weights{Rating: 0.6, TravelTime: 0.4}
}

// Validate checks that the weights sum to 1 within tolerance.
func (w Weights) Validate() error {
	sum := w.Similarity + w.Rating + w.TravelTime
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: got %.3f", ErrInvalidWeights, sum)
	}
	return nil
}

func (w Weights) isZero() bool {
	return w.Similarity == 0 && w.Rating == 0 && w.TravelTime == 0
}

// Ranker scores and orders venues.
type Ranker struct {
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRanker creates a ranker backed by the given embedder.
func NewRanker(embedder ai.Embedder, opts ...Option) (*Ranker, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Ranker{
		embedder: embedder,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "ranker")
	return r, nil
}

// Rank orders venues by combined score, best first. keywords are the user's
// additional requests; when present, venues without review text are dropped
// and review similarity contributes to the score. weights may be zero for
// defaults. The input slice is never mutated.
func (r *Ranker) Rank(ctx context.Context, venues []*core.Venue, keywords []string, weights Weights) ([]core.RankedVenue, error) {
	keywords = nonEmpty(keywords)

	if weights.isZero() {
		weights = DefaultWeights(len(keywords) > 0)
	} else if err := weights.Validate(); err != nil {
		return nil, err
	}

	var keywordVectors [][]float32
	if len(keywords) > 0 {
		vectors, err := r.embedder.EmbedTexts(ctx, keywords)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
		}
		keywordVectors = vectors
	}

	ranked := make([]core.RankedVenue, 0, len(venues))
	for _, venue := range venues {
		if !rankable(venue, len(keywords) > 0) {
			r.logger.Debug("skipping unrankable venue", "name", venue.Name)
			continue
		}

		similarity := 0.0
		if len(keywordVectors) > 0 {
			avg, ok, err := r.reviewSimilarity(ctx, venue, keywordVectors)
			if err != nil {
				return nil, err
			}
			if !ok {
				r.logger.Debug("skipping venue with no review embeddings", "name", venue.Name)
				continue
			}
			similarity = avg
		}

		score := weights.Similarity*similarity +
			weights.Rating*(venue.Rating/5) +
			weights.TravelTime*(1/(1+venue.TravelTime))

		ranked = append(ranked, core.RankedVenue{
			Venue:             venue,
			CombinedScore:     score,
			AverageSimilarity: similarity,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CombinedScore > ranked[j].CombinedScore
	})

	r.logger.Debug("ranked venues", "in", len(venues), "out", len(ranked))
	return ranked, nil
}

// reviewSimilarity embeds the venue's review texts and averages cosine
// similarity per review across the keyword vectors, then across reviews.
// ok is false when the embedder produced no vectors for the texts; the venue
// carries no similarity signal and must be skipped, not scored as NaN.
func (r *Ranker) reviewSimilarity(ctx context.Context, venue *core.Venue, keywordVectors [][]float32) (similarity float64, ok bool, err error) {
	texts := reviewTexts(venue)
	vectors, err := r.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}
	if len(vectors) == 0 {
		return 0, false, nil
	}

	var total float64
	for _, reviewVector := range vectors {
		var perReview float64
		for _, keywordVector := range keywordVectors {
			perReview += cosineSimilarity(keywordVector, reviewVector)
		}
		total += perReview / float64(len(keywordVectors))
	}
	return total / float64(len(vectors)), true, nil
}

// rankable reports whether a venue carries enough signal to score. With
// keywords, at least one non-empty review text is also required.
func rankable(venue *core.Venue, needReviews bool) bool {
	if venue == nil || venue.Name == "" {
		return false
	}
	if venue.Rating <= 0 || venue.TravelTime <= 0 {
		return false
	}
	if needReviews && len(reviewTexts(venue)) == 0 {
		return false
	}
	return true
}

func reviewTexts(venue *core.Venue) []string {
	texts := make([]string, 0, len(venue.Reviews))
	for _, review := range venue.Reviews {
		if text := strings.TrimSpace(review.Text); text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
