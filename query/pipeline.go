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


// Package query turns free-text search requests into validated, structured
// fields. A turn runs extraction, per-field validation, and location
// resolution; when the location is ambiguous the turn pauses with a prompt
// and a context that Resume picks up on the user's next answer.
package query

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/placefinder/ai"
	"github.com/poiesic/placefinder/core"
)

const (
	extractionFailedMessage = "Sorry, I couldn't understand that request. Please rephrase and try again."

	// Corrective guidance attached to error results so the caller always
	// has a next-step line to show the user.
	rephrasePrompt      = "Try describing what you're looking for, where, and how far you're willing to travel."
	correctFieldsPrompt = "Please adjust those details and try your search again."
)

// defaultMinimumRating is assumed when the user states no star requirement.
const defaultMinimumRating = 3.5

// Resolver resolves a location query, possibly to an ambiguous options list.
// *geo.Resolver satisfies this.
type Resolver interface {
	Resolve(ctx context.Context, query string, userCoords *core.Coordinates) (*core.LocationResult, error)
}

// Pipeline orchestrates one query-understanding turn.
type Pipeline struct {
	extractor     ai.FieldExtractor
	resolver      Resolver
	defaultRating *float64
	tolerance     float64
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithDefaultRating sets the star requirement assumed when the user states
// none. Pass by value; the default is 3.5.
func WithDefaultRating(rating float64) Option {
	return func(p *Pipeline) error {
		p.defaultRating = &rating
		return nil
	}
}

// WithoutDefaultRating disables the assumed star requirement: an absent
// requirement stays absent and no rating filter is applied.
func WithoutDefaultRating() Option {
	return func(p *Pipeline) error {
		p.defaultRating = nil
		return nil
	}
}

// WithFuzzyTolerance sets the rating tolerance used to derive the fuzzy
// rating floor. Default is core.DefaultFuzzyTolerance.
func WithFuzzyTolerance(tolerance float64) Option {
	return func(p *Pipeline) error {
		p.tolerance = tolerance
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a pipeline from an extractor and a location resolver.
func NewPipeline(extractor ai.FieldExtractor, resolver Resolver, opts ...Option) (*Pipeline, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if resolver == nil {
		return nil, ErrResolverRequired
	}

	defaultRating := defaultMinimumRating
	p := &Pipeline{
		extractor:     extractor,
		resolver:      resolver,
		defaultRating: &defaultRating,
		tolerance:     core.DefaultFuzzyTolerance,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	p.logger = p.logger.With("component", "query_pipeline")
	return p, nil
}

// Process runs one turn. When pending is non-nil the text is treated as the
// user's answer to an earlier disambiguation prompt and the turn resumes
// from that context instead of extracting anew.
func (p *Pipeline) Process(ctx context.Context, text string, userCoords *core.Coordinates, pending *core.DisambiguationContext) (*Result, error) {
	if pending != nil {
		return p.Resume(ctx, text, pending)
	}

	extracted, err := p.extractor.ExtractFields(ctx, text)
	if err != nil {
		p.logger.Warn("field extraction failed", "err", err)
		return &Result{
			Status: StatusError,
			Prompt: rephrasePrompt,
			Errors: []string{extractionFailedMessage},
		}, nil
	}

	return p.processExtracted(ctx, text, extracted, userCoords)
}

// processExtracted validates extracted fields. Each field validates
// independently so one bad field never hides another; failed fields are
// reported and left nil. An ambiguous location short-circuits into a prompt
// before the remaining fields are considered.
func (p *Pipeline) processExtracted(ctx context.Context, originalQuery string, extracted *core.ExtractedFields, userCoords *core.Coordinates) (*Result, error) {
	validated := &core.ValidatedFields{
		PlaceToSearch:      extracted.PlaceToSearch,
		AdditionalRequests: extracted.AdditionalRequests,
	}
	var fieldErrors []string

	location, err := p.resolver.Resolve(ctx, extracted.Location, userCoords)
	switch {
	case err != nil:
		fieldErrors = append(fieldErrors, fmt.Sprintf("location: %v", err))
	case location.Ambiguous():
		return &Result{
			Status: StatusPrompt,
			Prompt: disambiguationPrompt(extracted.Location, location.Options),
			Context: &core.DisambiguationContext{
				OriginalQuery: originalQuery,
				Extracted:     *extracted,
				Options:       location.Options,
				UserCoords:    userCoords,
			},
		}, nil
	default:
		validated.Location = location
	}

	duration, err := core.ValidateTravelDuration(extracted.TravelDuration)
	if err != nil {
		fieldErrors = append(fieldErrors, fmt.Sprintf("travel duration: %v", err))
	} else {
		validated.TravelDuration = duration
	}

	stars, err := core.ValidateStarRequirement(extracted.MinimumStars, p.tolerance, p.defaultRating)
	if err != nil {
		fieldErrors = append(fieldErrors, fmt.Sprintf("minimum stars: %v", err))
	} else {
		validated.MinimumStars = stars
	}

	if len(fieldErrors) > 0 {
		p.logger.Debug("validation errors", "count", len(fieldErrors))
		return &Result{
			Status:    StatusError,
			Validated: validated,
			Prompt:    correctFieldsPrompt,
			Errors:    fieldErrors,
		}, nil
	}

	return &Result{
		Status:    StatusSuccess,
		Validated: validated,
	}, nil
}
