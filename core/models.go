package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs. Venues keep the
// same ID across result pages and repeated searches.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// TravelMode identifies how the user intends to reach a venue.
type TravelMode string

const (
	ModeWalking   TravelMode = "walking"
	ModeDriving   TravelMode = "driving"
	ModeBicycling TravelMode = "bicycling"
	ModeTransit   TravelMode = "transit"
)

// ValidTravelMode reports whether mode is one of the supported travel modes.
func ValidTravelMode(mode TravelMode) bool {
	switch mode {
	case ModeWalking, ModeDriving, ModeBicycling, ModeTransit:
		return true
	}
	return false
}

// LocationKind categorizes a resolved location.
type LocationKind string

const (
	KindCity       LocationKind = "city"
	KindLandmark   LocationKind = "landmark"
	KindUnresolved LocationKind = "unresolved"
)

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RawTravelDuration is the travel-duration sub-object as the extractor emits it.
// Value is untyped because the model may return a number or a numeric string.
type RawTravelDuration struct {
	Value any    `json:"value"`
	Unit  string `json:"unit"`
	Mode  string `json:"mode"`
}

// ExtractedFields is the raw field set produced by the extractor for one
// user utterance. Missing fields are zero values (JSON null). Instances are
// treated as immutable once produced; the disambiguation flow copies before
// substituting a selected location.
type ExtractedFields struct {
	Location           string             `json:"location"`
	PlaceToSearch      string             `json:"place_to_search"`
	TravelDuration     *RawTravelDuration `json:"travel_duration"`
	MinimumStars       any                `json:"minimum_star_requirement"`
	AdditionalRequests []string           `json:"additional_requests"`
}

// TravelDuration is a validated travel budget. Value is always in minutes.
type TravelDuration struct {
	Value float64    `json:"value"`
	Mode  TravelMode `json:"mode"`
}

// StarRequirement is a validated minimum rating filter.
// FuzzyRating is the rating minus the configured tolerance, clamped at 0,
// and is what venue filtering actually compares against.
type StarRequirement struct {
	Rating      float64 `json:"rating"`
	FuzzyRating float64 `json:"fuzzy_rating"`
}

// LocationOption is one candidate among which the user must disambiguate.
// Option order is significant: closest-to-user first when the user's
// coordinates are known, otherwise provider order.
type LocationOption struct {
	Kind         LocationKind `json:"kind"`
	DisplayValue string       `json:"display_value"`
	Coordinates  Coordinates  `json:"coordinates"`
}

// LocationResult is the outcome of resolving a free-text location.
// Exactly one of the following holds:
//   - Coordinates is non-nil (resolved)
//   - Options is non-empty (ambiguous, caller must disambiguate)
//   - Kind is KindUnresolved or the result is entirely empty
type LocationResult struct {
	Kind         LocationKind    `json:"kind"`
	DisplayValue string          `json:"display_value"`
	Coordinates  *Coordinates    `json:"coordinates"`
	Options      []LocationOption `json:"options"`
}

// Resolved reports whether the result carries a single concrete coordinate.
func (r *LocationResult) Resolved() bool {
	return r != nil && r.Coordinates != nil
}

// Ambiguous reports whether the result requires user disambiguation.
func (r *LocationResult) Ambiguous() bool {
	return r != nil && len(r.Options) > 0
}

// ValidatedFields is the validator output for one utterance. Sub-fields are
// independently nil on validation failure; the accompanying error list is
// carried by the pipeline result, not here.
type ValidatedFields struct {
	Location           *LocationResult
	PlaceToSearch      string
	TravelDuration     *TravelDuration
	MinimumStars       *StarRequirement
	AdditionalRequests []string
}

// DisambiguationContext is the snapshot taken when location resolution
// returns multiple candidates. It is single-use: the caller round-trips it
// verbatim on the next turn and it is discarded once a selection is made.
type DisambiguationContext struct {
	OriginalQuery string
	Extracted     ExtractedFields
	Options       []LocationOption
	UserCoords    *Coordinates
}

// Review is a single venue review.
type Review struct {
	Author    string
	Rating    float64
	Text      string
	Time      string // relative description, e.g. "2 weeks ago"
	Timestamp int64  // unix seconds, used for recency sorting
}

// Venue is a retrieved place candidate with the details ranking needs.
// TravelTime is in minutes for the venue's TravelMode.
type Venue struct {
	Id           ID
	Name         string
	Address      string
	Rating       float64
	PriceLevel   int
	Reviews      []Review
	Phone        string
	Website      string
	OpeningHours []string
	Location     *Coordinates
	TravelTime   float64
	TravelMode   TravelMode
}

// RankedVenue pairs a venue with its ranking scores. The ranker produces new
// RankedVenue values and never mutates the input venues.
// AverageSimilarity is only meaningful when the ranker was given keywords.
type RankedVenue struct {
	Venue             *Venue
	CombinedScore     float64
	AverageSimilarity float64
}
