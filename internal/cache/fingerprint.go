package cache

import (
	"fmt"
	"strings"
)

// CityKey builds the cache fingerprint for a city-name lookup. The name is
// trimmed and lowercased so "London" and " london " map to the same entry.
// The prefix keeps city keys from ever colliding with coordinate keys.
func CityKey(city string) string {
	return "city:" + strings.ToLower(strings.TrimSpace(city))
}

// CoordKey builds the cache fingerprint for a coordinate lookup. Four
// decimal places (~11m) is stable across repeated IP-location reads.
func CoordKey(lat, lon float64) string {
	return fmt.Sprintf("coord:%.4f,%.4f", lat, lon)
}
