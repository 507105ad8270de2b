package geo

import (
	"context"
	"time"
)

// Candidate is a single geocoding result from any provider.
type Candidate struct {
	// Address is the provider's display name for the place.
	Address string

	Lat float64
	Lon float64

	// RawType is the provider's raw type string (e.g. "city", "tourism").
	// Used heuristically to tag candidates as city or landmark.
	RawType string
}

// Geocoder resolves a free-text query to geographic candidates.
// Implementations must return ErrGeocoderTimeout or ErrGeocoderUnavailable
// (possibly wrapped) for transient failures so the resolver can retry them.
type Geocoder interface {
	// Geocode returns up to limit candidates for the query.
	// The timeout applies to the single request, not to retries.
	Geocode(ctx context.Context, query string, limit int, timeout time.Duration) ([]Candidate, error)
}
