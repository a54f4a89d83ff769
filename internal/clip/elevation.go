package clip

import (
	"fmt"

	"github.com/planbiir/profcalc/internal/profile"
)

// Elevation clips s to the part on or above the floor of b.
//
// For a band only the floor is applied here: area inside a band is
// area above Low minus area above High, two independent clips, because a
// single clamp between both levels mis-bounds profiles that cross each level
// more than once.
func Elevation(s profile.Series, b profile.ElevationBound) (profile.Clipped, error) {
	if err := b.Validate(); err != nil {
		return profile.Clipped{}, fmt.Errorf("clip elevation: %w", err)
	}
	return Above(s.Whole(), b.Floor()), nil
}

// Above keeps the stations of c that are on or above z. Every segment that
// passes strictly from one side of z to the other gets a station at exactly
// z; every enclosed above-z stretch becomes its own run. First and last
// stations that are on or above z are kept as they are.
func Above(c profile.Clipped, z float64) profile.Clipped {
	return halfPlane(c,
		func(st profile.Station) float64 { return st.Z - z },
		func(a, b profile.Station) (profile.Station, bool) { return AtZ(a, b, z) },
	)
}

// Below is Above mirrored: it keeps stations on or below z
func Below(c profile.Clipped, z float64) profile.Clipped {
	return halfPlane(c,
		func(st profile.Station) float64 { return z - st.Z },
		func(a, b profile.Station) (profile.Station, bool) { return AtZ(a, b, z) },
	)
}
