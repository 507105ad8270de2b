package query_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aimock "github.com/poiesic/placefinder/ai/mock"
	"github.com/poiesic/placefinder/core"
	"github.com/poiesic/placefinder/query"
)

// stubResolver records the location queries it is asked to resolve.
type stubResolver struct {
	resolveFunc func(ctx context.Context, location string, userCoords *core.Coordinates) (*core.LocationResult, error)
	queries     []string
}

func (s *stubResolver) Resolve(ctx context.Context, location string, userCoords *core.Coordinates) (*core.LocationResult, error) {
	s.queries = append(s.queries, location)
	if s.resolveFunc != nil {
		return s.resolveFunc(ctx, location, userCoords)
	}
	return &core.LocationResult{
		Kind:         core.KindCity,
		DisplayValue: location,
		Coordinates:  &core.Coordinates{Lat: 48.8566, Lon: 2.3522},
	}, nil
}

func extractorReturning(fields *core.ExtractedFields) *aimock.MockFieldExtractor {
	extractor := aimock.NewMockFieldExtractor()
	extractor.ExtractFieldsFunc = func(context.Context, string) (*core.ExtractedFields, error) {
		return fields, nil
	}
	return extractor
}

func ambiguousOptions() []core.LocationOption {
	return []core.LocationOption{
		{Kind: core.KindCity, DisplayValue: "Springfield, IL, USA", Coordinates: core.Coordinates{Lat: 39.7817, Lon: -89.6501}},
		{Kind: core.KindCity, DisplayValue: "Springfield, MA, USA", Coordinates: core.Coordinates{Lat: 42.1015, Lon: -72.5898}},
	}
}

func TestNewPipelineRequiredArguments(t *testing.T) {
	resolver := &stubResolver{}
	extractor := aimock.NewMockFieldExtractor()

	_, err := query.NewPipeline(nil, resolver)
	assert.ErrorIs(t, err, query.ErrExtractorRequired)

	_, err = query.NewPipeline(extractor, nil)
	assert.ErrorIs(t, err, query.ErrResolverRequired)
}

func TestProcessSuccess(t *testing.T) {
	extractor := extractorReturning(&core.ExtractedFields{
		Location:           "Paris",
		PlaceToSearch:      "coffee shop",
		TravelDuration:     &core.RawTravelDuration{Value: 10, Mode: "walking"},
		MinimumStars:       4.0,
		AdditionalRequests: []string{"quiet", "free wifi"},
	})
	resolver := &stubResolver{}

	pipeline, err := query.NewPipeline(extractor, resolver)
	require.NoError(t, err)

	result, err := pipeline.Process(context.Background(), "quiet coffee shop in Paris within 10 minutes walking, at least 4 stars, free wifi", nil, nil)
	require.NoError(t, err)
	require.Equal(t, query.StatusSuccess, result.Status)

	validated := result.Validated
	require.NotNil(t, validated)
	require.NotNil(t, validated.Location)
	assert.Equal(t, "Paris", validated.Location.DisplayValue)
	assert.Equal(t, "coffee shop", validated.PlaceToSearch)
	require.NotNil(t, validated.TravelDuration)
	assert.Equal(t, core.TravelDuration{Value: 10, Mode: core.ModeWalking}, *validated.TravelDuration)
	require.NotNil(t, validated.MinimumStars)
	assert.InDelta(t, 4.0, validated.MinimumStars.Rating, 1e-9)
	assert.InDelta(t, 3.9, validated.MinimumStars.FuzzyRating, 1e-9)
	assert.Equal(t, []string{"quiet", "free wifi"}, validated.AdditionalRequests)
}

func TestProcessExtractionFailure(t *testing.T) {
	extractor := aimock.NewMockFieldExtractor()
	extractor.ExtractFieldsFunc = func(context.Context, string) (*core.ExtractedFields, error) {
		return nil, errors.New("model unavailable")
	}

	pipeline, err := query.NewPipeline(extractor, &stubResolver{})
	require.NoError(t, err)

	result, err := pipeline.Process(context.Background(), "gibberish", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, query.StatusError, result.Status)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "rephrase")
	assert.NotEmpty(t, result.Prompt)
}

func TestProcessCollectsIndependentFieldErrors(t *testing.T) {
	extractor := extractorReturning(&core.ExtractedFields{
		Location:       "Paris",
		PlaceToSearch:  "restaurant",
		TravelDuration: &core.RawTravelDuration{Value: 10, Mode: "teleport"},
		MinimumStars:   "legendary",
	})
	resolver := &stubResolver{}

	pipeline, err := query.NewPipeline(extractor, resolver)
	require.NoError(t, err)

	result, err := pipeline.Process(context.Background(), "restaurant in Paris", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, query.StatusError, result.Status)
	assert.Len(t, result.Errors, 2)
	assert.NotEmpty(t, result.Prompt)

	// One bad field never hides the others.
	require.NotNil(t, result.Validated)
	assert.NotNil(t, result.Validated.Location)
	assert.Nil(t, result.Validated.TravelDuration)
	assert.Nil(t, result.Validated.MinimumStars)
	assert.Equal(t, "restaurant", result.Validated.PlaceToSearch)
}

func TestProcessAppliesDefaults(t *testing.T) {
	extractor := extractorReturning(&core.ExtractedFields{
		Location:      "Paris",
		PlaceToSearch: "bakery",
	})

	pipeline, err := query.NewPipeline(extractor, &stubResolver{})
	require.NoError(t, err)

	result, err := pipeline.Process(context.Background(), "bakery in Paris", nil, nil)
	require.NoError(t, err)
	require.Equal(t, query.StatusSuccess, result.Status)

	require.NotNil(t, result.Validated.TravelDuration)
	assert.Equal(t, core.TravelDuration{Value: 15, Mode: core.ModeWalking}, *result.Validated.TravelDuration)
	require.NotNil(t, result.Validated.MinimumStars)
	assert.InDelta(t, 3.5, result.Validated.MinimumStars.Rating, 1e-9)
}

func TestProcessWithoutDefaultRating(t *testing.T) {
	extractor := extractorReturning(&core.ExtractedFields{
		Location:      "Paris",
		PlaceToSearch: "bakery",
	})

	pipeline, err := query.NewPipeline(extractor, &stubResolver{}, query.WithoutDefaultRating())
	require.NoError(t, err)

	result, err := pipeline.Process(context.Background(), "bakery in Paris", nil, nil)
	require.NoError(t, err)
	require.Equal(t, query.StatusSuccess, result.Status)
	assert.Nil(t, result.Validated.MinimumStars)
}

func TestProcessAmbiguousLocationPrompts(t *testing.T) {
	extracted := &core.ExtractedFields{
		Location:      "Springfield",
		PlaceToSearch: "diner",
		MinimumStars:  "legendary", // would fail validation, but the prompt comes first
	}
	extractor := extractorReturning(extracted)
	resolver := &stubResolver{
		resolveFunc: func(context.Context, string, *core.Coordinates) (*core.LocationResult, error) {
			return &core.LocationResult{Options: ambiguousOptions()}, nil
		},
	}

	pipeline, err := query.NewPipeline(extractor, resolver)
	require.NoError(t, err)

	coords := &core.Coordinates{Lat: 42.3601, Lon: -71.0589}
	result, err := pipeline.Process(context.Background(), "diner in Springfield", coords, nil)
	require.NoError(t, err)
	require.Equal(t, query.StatusPrompt, result.Status)
	assert.Empty(t, result.Errors)

	assert.Contains(t, result.Prompt, "1. Springfield, IL, USA")
	assert.Contains(t, result.Prompt, "2. Springfield, MA, USA")
	assert.Contains(t, result.Prompt, "'cancel'")

	require.NotNil(t, result.Context)
	assert.Equal(t, "diner in Springfield", result.Context.OriginalQuery)
	assert.Equal(t, *extracted, result.Context.Extracted)
	assert.Equal(t, coords, result.Context.UserCoords)
	assert.Len(t, result.Context.Options, 2)
}

func TestProcessLocationResolutionError(t *testing.T) {
	extractor := extractorReturning(&core.ExtractedFields{
		Location:      "xyzzy",
		PlaceToSearch: "bar",
	})
	resolver := &stubResolver{
		resolveFunc: func(context.Context, string, *core.Coordinates) (*core.LocationResult, error) {
			return nil, errors.New("no results found")
		},
	}

	pipeline, err := query.NewPipeline(extractor, resolver)
	require.NoError(t, err)

	result, err := pipeline.Process(context.Background(), "bar in xyzzy", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, query.StatusError, result.Status)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "location")
	assert.NotEmpty(t, result.Prompt)
	assert.Nil(t, result.Validated.Location)

	// The other fields still validated.
	assert.NotNil(t, result.Validated.TravelDuration)
	assert.NotNil(t, result.Validated.MinimumStars)
}
