package geo

import "github.com/poiesic/placefinder/core"

// GazetteerEntry is one known place in the reference gazetteer.
type GazetteerEntry struct {
	Name        string
	Kind        core.LocationKind
	Coordinates core.Coordinates
}

// DefaultGazetteer is a small fixed reference table of well-known places,
// matched fuzzily before falling back to a live geocoder. Deployments with
// their own reference data replace it via WithGazetteer.
func DefaultGazetteer() []GazetteerEntry {
	return []GazetteerEntry{
		{Name: "Paris", Kind: core.KindCity, Coordinates: core.Coordinates{Lat: 48.8566, Lon: 2.3522}},
		{Name: "New York City", Kind: core.KindCity, Coordinates: core.Coordinates{Lat: 40.7128, Lon: -74.0060}},
		{Name: "Eiffel Tower", Kind: core.KindLandmark, Coordinates: core.Coordinates{Lat: 48.8584, Lon: 2.2945}},
		{Name: "Springfield, IL", Kind: core.KindCity, Coordinates: core.Coordinates{Lat: 39.7817, Lon: -89.6501}},
		{Name: "Springfield, MA", Kind: core.KindCity, Coordinates: core.Coordinates{Lat: 42.1015, Lon: -72.5898}},
	}
}

// DefaultAliases maps informal place names to their canonical gazetteer form.
// Keys are matched case-insensitively against the whole query.
func DefaultAliases() map[string]string {
	return map[string]string{
		"the big apple": "New York City",
		"nyc":           "New York City",
	}
}
