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

import "errors"

// Field validation errors
var (
	// ErrInvalidTravelMode indicates a travel mode outside the supported set.
	ErrInvalidTravelMode = errors.New("invalid travel mode")

	// ErrInvalidDurationValue indicates a travel duration that is not a positive number.
	ErrInvalidDurationValue = errors.New("invalid travel duration value")

	// ErrInvalidDurationUnit indicates a duration unit outside {minutes, hours, seconds}.
	ErrInvalidDurationUnit = errors.New("invalid travel duration unit")

	// ErrUnrecognizedRatingTerm indicates a qualitative rating term outside the lexicon.
	ErrUnrecognizedRatingTerm = errors.New("unrecognized rating term")

	// ErrRatingOutOfRange indicates a numeric rating outside [0, 5].
	ErrRatingOutOfRange = errors.New("rating out of range")

	// ErrInvalidRatingType indicates a rating value that is neither a number nor a string.
	ErrInvalidRatingType = errors.New("invalid rating type")

	// ErrInvalidLocationResult indicates a LocationResult that violates the
	// resolved/ambiguous mutual exclusivity invariant.
	ErrInvalidLocationResult = errors.New("invalid location result")
)
