package clip

import "github.com/planbiir/profcalc/internal/profile"

// AtZ returns the station where segment a→b reaches elevation z.
// A horizontal segment has no such point and returns false.
func AtZ(a, b profile.Station, z float64) (profile.Station, bool) {
	if a.Z == b.Z {
		return profile.Station{}, false
	}
	x := a.X + (b.X-a.X)*(z-a.Z)/(b.Z-a.Z)
	return profile.Station{X: x, Z: z}, true
}

// AtX returns the station where segment a→b reaches horizontal distance x.
// A vertical segment has no single such point and returns false.
func AtX(a, b profile.Station, x float64) (profile.Station, bool) {
	if a.X == b.X {
		return profile.Station{}, false
	}
	z := a.Z + (b.Z-a.Z)*(x-a.X)/(b.X-a.X)
	return profile.Station{X: x, Z: z}, true
}
