package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCityKey_Normalization(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase passthrough", in: "london", want: "city:london"},
		{name: "case folded", in: "London", want: "city:london"},
		{name: "surrounding whitespace trimmed", in: "  New York  ", want: "city:new york"},
		{name: "unicode preserved", in: "Zürich", want: "city:zürich"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CityKey(tt.in))
		})
	}
}

func TestCityKey_Deterministic(t *testing.T) {
	assert.Equal(t, CityKey("London"), CityKey("london"))
	assert.Equal(t, CityKey("Tokyo"), CityKey("Tokyo"))
}

func TestCoordKey_FixedPrecision(t *testing.T) {
	assert.Equal(t, "coord:51.5074,-0.1278", CoordKey(51.5074, -0.1278))
	// Sub-precision jitter maps to the same key.
	assert.Equal(t, CoordKey(51.50740001, -0.12780001), CoordKey(51.5074, -0.1278))
	// A real coordinate difference does not.
	assert.NotEqual(t, CoordKey(51.5074, -0.1278), CoordKey(51.5075, -0.1278))
}

func TestFingerprints_NamespacesNeverCollide(t *testing.T) {
	// A city named like a coordinate pair still lands in the city namespace.
	assert.NotEqual(t, CityKey("51.5074,-0.1278"), CoordKey(51.5074, -0.1278))
}
