package places

import (
	"context"

	"github.com/poiesic/placefinder/core"
)

// Summary is the lightweight venue record returned by a nearby search,
// before details and reviews are fetched.
type Summary struct {
	PlaceID  string
	Name     string
	Address  string
	Rating   float64
	Location core.Coordinates
}

// Provider is the venue data source. Implementations wrap an external places
// API; the mock subpackage provides a test double.
type Provider interface {
	// NearbySearch returns one page of venues matching keyword within
	// radiusMeters of center. An empty pageToken requests the first page;
	// the returned token is non-empty when more pages exist.
	NearbySearch(ctx context.Context, center core.Coordinates, keyword string, radiusMeters int, pageToken string) ([]Summary, string, error)

	// TravelTimes returns the travel duration in seconds from origin to each
	// destination, in destination order, for the given mode.
	TravelTimes(ctx context.Context, origin core.Coordinates, destinations []core.Coordinates, mode core.TravelMode) ([]float64, error)

	// PlaceDetails returns the full venue record, including reviews.
	PlaceDetails(ctx context.Context, placeID string) (*core.Venue, error)
}
