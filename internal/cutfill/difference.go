package cutfill

import (
	"fmt"

	"github.com/planbiir/profcalc/internal/area"
	"github.com/planbiir/profcalc/internal/clip"
	"github.com/planbiir/profcalc/internal/profile"
)

// Difference returns the signed area between survey a and survey b over the
// range both cover: positive is net fill, negative is net cut.
//
// With an elevation bound each survey is first clipped to the bound and only
// material above it is compared. A band is handled as the difference above
// its floor minus the difference above its ceiling.
func Difference(a, b profile.Series, eb *profile.ElevationBound) (float64, error) {
	if eb == nil {
		return difference(a, b)
	}
	if err := eb.Validate(); err != nil {
		return 0, fmt.Errorf("difference: %w", err)
	}
	if eb.Kind == profile.KindBand {
		low, err := differenceAbove(a, b, eb.Low)
		if err != nil {
			return 0, err
		}
		high, err := differenceAbove(a, b, eb.High)
		if err != nil {
			return 0, err
		}
		return low - high, nil
	}
	return differenceAbove(a, b, eb.Z)
}

func difference(a, b profile.Series) (float64, error) {
	g, err := Resample(a, b)
	if err != nil {
		return 0, fmt.Errorf("difference: %w", err)
	}
	return area.IntegrateSeries(g.Diff(), 0), nil
}

func differenceAbove(a, b profile.Series, z float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("difference: %w", profile.ErrEmptySeries)
	}
	return difference(floorAt(ordered(a), z), floorAt(ordered(b), z))
}

// floorAt clips an x-ordered series to z and holds the stretches below z at
// exactly z, so the result spans the original range and measures only
// material above z
func floorAt(s profile.Series, z float64) profile.Series {
	first, last := s[0], s[len(s)-1]
	c := clip.Above(s.Whole(), z)

	cf, ok := c.First()
	if !ok {
		if first.X == last.X {
			return profile.Series{{X: first.X, Z: z}}
		}
		return profile.Series{{X: first.X, Z: z}, {X: last.X, Z: z}}
	}
	cl, _ := c.Last()

	out := make(profile.Series, 0, c.Len()+2)
	if cf.X > first.X {
		out = append(out, profile.Station{X: first.X, Z: z})
	}
	// Interior run ends lie on z, so joining runs end to start keeps the
	// gap flat at z.
	out = append(out, c.Series()...)
	if cl.X < last.X {
		out = append(out, profile.Station{X: last.X, Z: z})
	}
	return out
}
