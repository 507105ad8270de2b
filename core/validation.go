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


package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultDurations maps each travel mode to its default budget in minutes,
// used when the user gives a vague phrase like "within walking distance".
var DefaultDurations = map[TravelMode]float64{
	ModeWalking:   15,
	ModeDriving:   10,
	ModeBicycling: 20,
	ModeTransit:   30,
}

// QualitativeRatings maps qualitative quality terms to numeric star ratings.
var QualitativeRatings = map[string]float64{
	"excellent":    4.5,
	"amazing":      4.5,
	"outstanding":  4.5,
	"highly-rated": 4.0,
	"top-rated":    4.0,
	"best":         4.0,
	"good":         3.5,
	"decent":       3.5,
	"average":      3.0,
	"okay":         3.0,
}

// DefaultFuzzyTolerance is the slack subtracted from a rating to form the
// fuzzy rating used for venue filtering (a 4.0 requirement admits a 3.9 venue).
const DefaultFuzzyTolerance = 0.1

// ValidateTravelDuration validates and normalizes an extracted travel duration.
//
// Rules:
//   - nil input, or input without a mode, yields the walking default {15, walking}
//   - a mode outside the supported set fails with ErrInvalidTravelMode
//   - a mode with neither value nor unit yields that mode's default duration
//   - the value must parse to a positive number or ErrInvalidDurationValue
//   - the unit defaults to minutes and must be minutes, hours or seconds;
//     the stored value is always converted to minutes
func ValidateTravelDuration(input *RawTravelDuration) (*TravelDuration, error) {
	if input == nil {
		return &TravelDuration{Value: DefaultDurations[ModeWalking], Mode: ModeWalking}, nil
	}

	mode := TravelMode(strings.ToLower(strings.TrimSpace(input.Mode)))
	if mode != "" && !ValidTravelMode(mode) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTravelMode, input.Mode)
	}
	if mode == "" {
		return &TravelDuration{Value: DefaultDurations[ModeWalking], Mode: ModeWalking}, nil
	}

	// Vague phrase: mode known but no explicit value or unit.
	if input.Value == nil && input.Unit == "" {
		return &TravelDuration{Value: DefaultDurations[mode], Mode: mode}, nil
	}

	value, err := parseNumber(input.Value)
	if err != nil || value <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDurationValue, input.Value)
	}

	unit := strings.ToLower(strings.TrimSpace(input.Unit))
	switch unit {
	case "", "minutes":
		// Already in minutes.
	case "hours":
		value *= 60
	case "seconds":
		value /= 60
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDurationUnit, input.Unit)
	}

	return &TravelDuration{Value: value, Mode: mode}, nil
}

// ValidateStarRequirement validates an extracted minimum star requirement.
//
// A nil input returns the default requirement, or (nil, nil) when no default
// is configured: absence of a rating filter is not an error. String inputs
// are matched case-insensitively against the qualitative lexicon. Numeric
// inputs are rounded to one decimal and must lie within [0, 5].
func ValidateStarRequirement(stars any, tolerance float64, defaultRating *float64) (*StarRequirement, error) {
	if stars == nil {
		if defaultRating == nil {
			return nil, nil
		}
		return &StarRequirement{
			Rating:      *defaultRating,
			FuzzyRating: math.Max(0, *defaultRating-tolerance),
		}, nil
	}

	if term, ok := stars.(string); ok {
		rating, ok := QualitativeRatings[strings.ToLower(strings.TrimSpace(term))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnrecognizedRatingTerm, term)
		}
		return &StarRequirement{
			Rating:      rating,
			FuzzyRating: math.Max(0, rating-tolerance),
		}, nil
	}

	rating, err := parseNumber(stars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRatingType, stars)
	}
	rating = math.Round(rating*10) / 10
	if rating < 0 || rating > 5 {
		return nil, fmt.Errorf("%w: %v", ErrRatingOutOfRange, stars)
	}
	return &StarRequirement{
		Rating:      rating,
		FuzzyRating: math.Max(0, rating-tolerance),
	}, nil
}

// ValidateLocationResult enforces the mutual exclusivity invariant:
// a result never carries both a resolved coordinate and candidate options.
func ValidateLocationResult(result *LocationResult) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", ErrInvalidLocationResult)
	}
	if result.Resolved() && result.Ambiguous() {
		return fmt.Errorf("%w: both coordinates and options set", ErrInvalidLocationResult)
	}
	return nil
}

// parseNumber coerces the loosely typed values JSON decoding and LLM output
// produce into a float64.
func parseNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}
