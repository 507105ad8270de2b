package geo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/placefinder/cache"
	"github.com/poiesic/placefinder/core"
	"github.com/poiesic/placefinder/geo"
	"github.com/poiesic/placefinder/geo/mock"
)

// memCache is a minimal in-process cache.Cache for tests. TTL is recorded but
// not enforced.
type memCache struct {
	mu      sync.Mutex
	entries map[string]string
	ttls    map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return value, nil
}

func (c *memCache) SetEx(_ context.Context, key string, ttl time.Duration, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *memCache) Close() error { return nil }

func singleCandidate(address, rawType string, lat, lon float64) func(context.Context, string, int, time.Duration) ([]geo.Candidate, error) {
	return func(context.Context, string, int, time.Duration) ([]geo.Candidate, error) {
		return []geo.Candidate{{Address: address, RawType: rawType, Lat: lat, Lon: lon}}, nil
	}
}

func TestResolveEmptyQuery(t *testing.T) {
	resolver, err := geo.NewResolver(mock.NewMockGeocoder())
	require.NoError(t, err)

	result, err := resolver.Resolve(context.Background(), "   ", nil)
	require.NoError(t, err)
	assert.False(t, result.Resolved())
	assert.False(t, result.Ambiguous())
}

func TestNewResolverRequiresGeocoder(t *testing.T) {
	_, err := geo.NewResolver(nil)
	assert.ErrorIs(t, err, geo.ErrGeocoderRequired)
}

func TestResolveNearMeUsesAnchor(t *testing.T) {
	geocoder := mock.NewMockGeocoder()
	resolver, err := geo.NewResolver(geocoder)
	require.NoError(t, err)

	// "New York City" sits in the default gazetteer, so "near me" should
	// resolve without any geocoder call.
	result, err := resolver.Resolve(context.Background(), "Near Me", nil)
	require.NoError(t, err)
	require.True(t, result.Resolved())
	assert.Equal(t, "New York City", result.DisplayValue)
	assert.Equal(t, core.KindCity, result.Kind)
	assert.Zero(t, geocoder.CallCount())
}

func TestResolveAlias(t *testing.T) {
	geocoder := mock.NewMockGeocoder()
	resolver, err := geo.NewResolver(geocoder)
	require.NoError(t, err)

	result, err := resolver.Resolve(context.Background(), "The Big Apple", nil)
	require.NoError(t, err)
	require.True(t, result.Resolved())
	assert.Equal(t, "New York City", result.DisplayValue)
	assert.Zero(t, geocoder.CallCount())
}

func TestResolveGazetteerFuzzyMatch(t *testing.T) {
	geocoder := mock.NewMockGeocoder()
	resolver, err := geo.NewResolver(geocoder)
	require.NoError(t, err)

	result, err := resolver.Resolve(context.Background(), "Pariis", nil)
	require.NoError(t, err)
	require.True(t, result.Resolved())
	assert.Equal(t, "Paris", result.DisplayValue)
	require.NotNil(t, result.Coordinates)
	assert.InDelta(t, 48.8566, result.Coordinates.Lat, 1e-6)
	assert.Zero(t, geocoder.CallCount())
}

func TestResolveCacheHitShortCircuits(t *testing.T) {
	geocoder := mock.NewMockGeocoder()
	geocoder.GeocodeFunc = singleCandidate("Berlin, Germany", "city", 52.52, 13.405)

	store := newMemCache()
	resolver, err := geo.NewResolver(geocoder, geo.WithCache(store))
	require.NoError(t, err)

	first, err := resolver.Resolve(context.Background(), "Berlin", nil)
	require.NoError(t, err)
	require.True(t, first.Resolved())
	assert.Equal(t, 1, geocoder.CallCount())
	assert.Equal(t, time.Hour, store.ttls["location:berlin"])

	// Second resolution comes from the cache; case differences share a key.
	second, err := resolver.Resolve(context.Background(), "BERLIN", nil)
	require.NoError(t, err)
	assert.Equal(t, first.DisplayValue, second.DisplayValue)
	assert.Equal(t, 1, geocoder.CallCount())
}

func TestResolveSingleCandidate(t *testing.T) {
	geocoder := mock.NewMockGeocoder()
	geocoder.GeocodeFunc = singleCandidate("Reykjavik, Iceland", "administrative", 64.1466, -21.9426)

	resolver, err := geo.NewResolver(geocoder)
	require.NoError(t, err)

	result, err := resolver.Resolve(context.Background(), "Reykjavik", nil)
	require.NoError(t, err)
	require.True(t, result.Resolved())
	assert.False(t, result.Ambiguous())
	assert.Equal(t, "Reykjavik, Iceland", result.DisplayValue)
	assert.Equal(t, core.KindLandmark, result.Kind)
}

func TestResolveAmbiguous(t *testing.T) {
	geocoder := mock.NewMockGeocoder()
	geocoder.GeocodeFunc = func(context.Context, string, int, time.Duration) ([]geo.Candidate, error) {
		return []geo.Candidate{
			{Address: "Springfield, IL, USA", RawType: "city", Lat: 39.7817, Lon: -89.6501},
			{Address: "Springfield, MA, USA", RawType: "city", Lat: 42.1015, Lon: -72.5898},
			{Address: "Springfield, MO, USA", RawType: "city", Lat: 37.2090, Lon: -93.2923},
		}, nil
	}

	resolver, err := geo.NewResolver(geocoder, geo.WithGazetteer(nil))
	require.NoError(t, err)

	result, err := resolver.Resolve(context.Background(), "Springfeld", nil)
	require.NoError(t, err)
	assert.True(t, result.Ambiguous())
	assert.False(t, result.Resolved())
	require.Len(t, result.Options, 3)
	assert.Equal(t, core.KindCity, result.Options[0].Kind)
}

func TestResolveAmbiguousSortedByDistance(t *testing.T) {
	geocoder := mock.NewMockGeocoder()
	geocoder.GeocodeFunc = func(context.Context, string, int, time.Duration) ([]geo.Candidate, error) {
		return []geo.Candidate{
			{Address: "Springfield, MO, USA", RawType: "city", Lat: 37.2090, Lon: -93.2923},
			{Address: "Springfield, MA, USA", RawType: "city", Lat: 42.1015, Lon: -72.5898},
			{Address: "Springfield, IL, USA", RawType: "city", Lat: 39.7817, Lon: -89.6501},
		}, nil
	}

	resolver, err := geo.NewResolver(geocoder, geo.WithGazetteer(nil))
	require.NoError(t, err)

	// A user near Boston should see Springfield MA first.
	boston := &core.Coordinates{Lat: 42.3601, Lon: -71.0589}
	result, err := resolver.Resolve(context.Background(), "Springfeld", boston)
	require.NoError(t, err)
	require.Len(t, result.Options, 3)
	assert.Equal(t, "Springfield, MA, USA", result.Options[0].DisplayValue)
	assert.Equal(t, "Springfield, IL, USA", result.Options[1].DisplayValue)
	assert.Equal(t, "Springfield, MO, USA", result.Options[2].DisplayValue)
}

func TestResolveNoResults(t *testing.T) {
	geocoder := mock.NewMockGeocoder()
	resolver, err := geo.NewResolver(geocoder, geo.WithGazetteer(nil))
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), "xyzzy plugh", nil)
	assert.ErrorIs(t, err, geo.ErrNoResultsFound)
}

func TestResolveRetriesTransientFailures(t *testing.T) {
	geocoder := mock.NewMockGeocoder()
	attempts := 0
	geocoder.GeocodeFunc = func(context.Context, string, int, time.Duration) ([]geo.Candidate, error) {
		attempts++
		if attempts < 3 {
			return nil, geo.ErrGeocoderTimeout
		}
		return []geo.Candidate{{Address: "Lagos, Nigeria", RawType: "city", Lat: 6.5244, Lon: 3.3792}}, nil
	}

	resolver, err := geo.NewResolver(geocoder,
		geo.WithGazetteer(nil),
		geo.WithRetries(2),
		geo.WithRetryDelay(time.Millisecond),
	)
	require.NoError(t, err)

	result, err := resolver.Resolve(context.Background(), "Lagos", nil)
	require.NoError(t, err)
	assert.True(t, result.Resolved())
	assert.Equal(t, 3, attempts)
}

func TestResolveRetryExhaustion(t *testing.T) {
	geocoder := mock.NewMockGeocoder()
	geocoder.GeocodeFunc = func(context.Context, string, int, time.Duration) ([]geo.Candidate, error) {
		return nil, geo.ErrGeocoderUnavailable
	}

	resolver, err := geo.NewResolver(geocoder,
		geo.WithGazetteer(nil),
		geo.WithRetries(2),
		geo.WithRetryDelay(time.Millisecond),
	)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), "Lagos", nil)
	assert.ErrorIs(t, err, geo.ErrGeocodingFailed)
	assert.Equal(t, 3, geocoder.CallCount())
}

func TestResolveNonTransientFailureNotRetried(t *testing.T) {
	geocoder := mock.NewMockGeocoder()
	geocoder.GeocodeFunc = func(context.Context, string, int, time.Duration) ([]geo.Candidate, error) {
		return nil, errors.New("bad request")
	}

	resolver, err := geo.NewResolver(geocoder, geo.WithGazetteer(nil))
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), "Lagos", nil)
	assert.ErrorIs(t, err, geo.ErrGeocodingFailed)
	assert.Equal(t, 1, geocoder.CallCount())
}

func TestResolveResultExclusivity(t *testing.T) {
	// Whatever the candidate count, a result is never simultaneously
	// resolved and ambiguous.
	counts := []int{1, 2, 5}
	for _, n := range counts {
		geocoder := mock.NewMockGeocoder()
		geocoder.GeocodeFunc = func(context.Context, string, int, time.Duration) ([]geo.Candidate, error) {
			candidates := make([]geo.Candidate, n)
			for i := range candidates {
				candidates[i] = geo.Candidate{Address: "Somewhere", RawType: "city", Lat: float64(i), Lon: float64(i)}
			}
			return candidates, nil
		}

		resolver, err := geo.NewResolver(geocoder, geo.WithGazetteer(nil))
		require.NoError(t, err)

		result, err := resolver.Resolve(context.Background(), "somewhere", nil)
		require.NoError(t, err)
		assert.NoError(t, core.ValidateLocationResult(result))
		assert.False(t, result.Resolved() && result.Ambiguous())
	}
}
