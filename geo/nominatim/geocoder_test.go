package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/placefinder/geo"
)

func TestGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"display_name": "Paris, France", "lat": "48.8566", "lon": "2.3522", "addresstype": "city", "type": "administrative"},
			{"display_name": "Paris, TX, USA", "lat": "33.6609", "lon": "-95.5555", "addresstype": "", "type": "town"}
		]`))
	}))
	defer server.Close()

	geocoder := New(WithBaseURL(server.URL))
	candidates, err := geocoder.Geocode(context.Background(), "Paris", 5, time.Second)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "Paris, France", candidates[0].Address)
	assert.Equal(t, "city", candidates[0].RawType)
	assert.InDelta(t, 48.8566, candidates[0].Lat, 1e-6)

	// addresstype falls back to type when empty.
	assert.Equal(t, "town", candidates[1].RawType)
}

func TestGeocodeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	geocoder := New(WithBaseURL(server.URL))
	_, err := geocoder.Geocode(context.Background(), "Paris", 5, time.Second)
	assert.ErrorIs(t, err, geo.ErrGeocoderUnavailable)
}

func TestGeocodeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	geocoder := New(WithBaseURL(server.URL))
	_, err := geocoder.Geocode(context.Background(), "Paris", 5, 10*time.Millisecond)
	assert.ErrorIs(t, err, geo.ErrGeocoderTimeout)
}

func TestGeocodeSkipsBadCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"display_name": "Nowhere", "lat": "not-a-number", "lon": "0"}]`))
	}))
	defer server.Close()

	geocoder := New(WithBaseURL(server.URL))
	candidates, err := geocoder.Geocode(context.Background(), "Nowhere", 5, time.Second)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
