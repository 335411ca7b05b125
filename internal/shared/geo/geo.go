package geo

import (
	"math"
	"strconv"

	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/apperr"
)

// Bounds is an inclusive latitude/longitude bounding box. Omitted bounds
// default to the full-earth range.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

func FullEarth() Bounds {
	return Bounds{MinLat: -90, MaxLat: 90, MinLon: -180, MaxLon: 180}
}

// ParseBounds overrides the full-earth defaults with any provided bound.
// A bound that does not parse as a number is a validation error.
func ParseBounds(minLat, maxLat, minLon, maxLon string) (Bounds, error) {
	b := FullEarth()
	for _, f := range []struct {
		name  string
		raw   string
		field *float64
	}{
		{"minLat", minLat, &b.MinLat},
		{"maxLat", maxLat, &b.MaxLat},
		{"minLon", minLon, &b.MinLon},
		{"maxLon", maxLon, &b.MaxLon},
	} {
		if f.raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(f.raw, 64)
		if err != nil {
			return Bounds{}, apperr.Invalidf("invalid %s: %q is not a number", f.name, f.raw)
		}
		*f.field = v
	}
	return b, nil
}

// Round6 trims a coordinate to six fractional digits, the precision the
// store keeps for latitude and longitude.
func Round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
