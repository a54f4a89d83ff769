// Package area integrates clipped profiles with the trapezoid rule and
// composes the clippers into the cross-sectional quantities reported for a
// beach survey: area above a contour, inside an elevation band, and between
// horizontal limits.
package area

import (
	"gonum.org/v1/gonum/floats"

	"github.com/planbiir/profcalc/internal/profile"
)

// Segments returns the signed trapezoid area of every segment of c relative
// to refZ, run by run in traversal order. There are no segments across run
// boundaries.
func Segments(c profile.Clipped, refZ float64) []float64 {
	out := make([]float64, 0, c.Len())
	for ri := range c.Runs {
		run := c.Run(ri)
		for i := 1; i < len(run); i++ {
			a, b := run[i-1], run[i]
			out = append(out, ((a.Z-refZ)+(b.Z-refZ))/2*(b.X-a.X))
		}
	}
	return out
}

// Integrate returns the signed trapezoidal area of c relative to refZ.
// Fewer than two stations integrate to zero. A right-to-left traversal gives
// the negated area of the same geometry.
func Integrate(c profile.Clipped, refZ float64) float64 {
	segs := Segments(c, refZ)
	if len(segs) == 0 {
		return 0
	}
	return floats.Sum(segs)
}

// IntegrateSeries integrates an unclipped series as a single run
func IntegrateSeries(s profile.Series, refZ float64) float64 {
	return Integrate(s.Whole(), refZ)
}
