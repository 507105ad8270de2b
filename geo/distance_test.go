package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/placefinder/core"
)

func TestHaversine(t *testing.T) {
	paris := core.Coordinates{Lat: 48.8566, Lon: 2.3522}
	nyc := core.Coordinates{Lat: 40.7128, Lon: -74.0060}

	// Paris to New York is about 5837 km.
	d := Haversine(paris, nyc)
	assert.InDelta(t, 5837, d, 20)

	// Symmetric and zero on identical points.
	assert.InDelta(t, d, Haversine(nyc, paris), 1e-9)
	assert.Zero(t, Haversine(paris, paris))
}
