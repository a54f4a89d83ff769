package area

import (
	"fmt"
	"math"

	"github.com/planbiir/profcalc/internal/clip"
	"github.com/planbiir/profcalc/internal/profile"
)

// CubicFeetPerCubicYard converts ft²-per-foot-alongshore to yd³/ft
const CubicFeetPerCubicYard = 27.0

// CubicYardsPerFoot converts an area in square feet to cubic yards per foot
// of shoreline
func CubicYardsPerFoot(sqft float64) float64 {
	return sqft / CubicFeetPerCubicYard
}

// AboveContour is the area of material on or above z
func AboveContour(s profile.Series, z float64) float64 {
	return aboveClipped(s.Whole(), z)
}

// BelowContour is the area between the profile and z where the profile lies
// below z. It is negative for a left-to-right profile.
func BelowContour(s profile.Series, z float64) float64 {
	return Integrate(clip.Below(s.Whole(), z), z)
}

// InBand is the area of material between low and high, computed as
// area above low minus area above high
func InBand(s profile.Series, low, high float64) (float64, error) {
	return AboveElevation(s, profile.Band(low, high))
}

// AboveElevation dispatches on the bound kind
func AboveElevation(s profile.Series, b profile.ElevationBound) (float64, error) {
	return elevationArea(s.Whole(), b)
}

// Between clips s to the horizontal bound and, when eb is given, to the
// elevation bound, then integrates. Without an elevation bound the area is
// taken against datum zero.
func Between(s profile.Series, hb profile.HorizontalBound, eb *profile.ElevationBound) (float64, error) {
	c, err := clip.Horizontal(s, hb)
	if err != nil {
		return 0, fmt.Errorf("area between: %w", err)
	}
	if eb == nil {
		return Integrate(c, 0), nil
	}
	a, err := elevationArea(c, *eb)
	if err != nil {
		return 0, fmt.Errorf("area between: %w", err)
	}
	return a, nil
}

func elevationArea(c profile.Clipped, b profile.ElevationBound) (float64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	if b.Kind == profile.KindBand {
		return aboveClipped(c, b.Low) - aboveClipped(c, b.High), nil
	}
	return aboveClipped(c, b.Z), nil
}

func aboveClipped(c profile.Clipped, z float64) float64 {
	return Integrate(clip.Above(c, z), z)
}

// Crossings lists, in traversal order, every x at which s meets elevation z:
// interpolated points on segments that pass strictly through z, and stations
// lying exactly on z
func Crossings(s profile.Series, z float64) []float64 {
	var xs []float64
	for i, st := range s {
		if i > 0 {
			a, b := s[i-1].Z-z, st.Z-z
			if (a > 0 && b < 0) || (a < 0 && b > 0) {
				if c, ok := clip.AtZ(s[i-1], st, z); ok {
					xs = append(xs, c.X)
				}
			}
		}
		if st.Z == z {
			xs = append(xs, st.X)
		}
	}
	return xs
}

// SeawardCrossing is the largest x at which s meets z
func SeawardCrossing(s profile.Series, z float64) (float64, bool) {
	xs := Crossings(s, z)
	if len(xs) == 0 {
		return math.NaN(), false
	}
	best := xs[0]
	for _, x := range xs[1:] {
		best = math.Max(best, x)
	}
	return best, true
}
