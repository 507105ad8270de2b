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

import "errors"

var (
	// ErrGeocoderRequired is returned when a resolver is constructed without a geocoder.
	ErrGeocoderRequired = errors.New("geocoder required")

	// ErrGeocodingFailed indicates the geocoder kept failing after all retries.
	ErrGeocodingFailed = errors.New("geocoding failed")

	// ErrNoResultsFound indicates the geocoder returned zero candidates.
	ErrNoResultsFound = errors.New("no results found")

	// ErrGeocoderTimeout indicates a single geocoding request timed out.
	// Transient: the resolver retries these.
	ErrGeocoderTimeout = errors.New("geocoder timed out")

	// ErrGeocoderUnavailable indicates the geocoding service is unreachable
	// or returned a server error. Transient: the resolver retries these.
	ErrGeocoderUnavailable = errors.New("geocoder unavailable")
)

// transient reports whether a geocoder error is worth retrying.
func transient(err error) bool {
	return errors.Is(err, ErrGeocoderTimeout) || errors.Is(err, ErrGeocoderUnavailable)
}
