package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	t.Parallel()

	// Same point
	assert.InDelta(t, 0, HaversineDistance(-6.2, 106.8, -6.2, 106.8), 0.001)

	// Jakarta Monas to Jakarta Kota railway station, roughly 4.5 km.
	d := HaversineDistance(-6.1754, 106.8272, -6.1377, 106.8133)
	assert.InDelta(t, 4450, d, 300)
}

func TestWithinRadius(t *testing.T) {
	t.Parallel()

	// ~111 meters per 0.001 degree of latitude.
	assert.True(t, WithinRadius(-6.2, 106.8, -6.2005, 106.8, 100))
	assert.False(t, WithinRadius(-6.2, 106.8, -6.205, 106.8, 100))
}
