// Package clip cuts profiles down to an admissible region, either above an
// elevation or between two horizontal limits, inserting an interpolated
// station wherever a segment crosses the boundary.
//
// Clippers are order preserving: they never sort, so zigzag, stepwise and
// backtracking profiles come out with the same traversal as they went in.
// Each contiguous admissible stretch becomes its own profile.Run.
package clip

import "github.com/planbiir/profcalc/internal/profile"

// side is positive inside the admissible region, zero on its boundary and
// negative outside
type side func(profile.Station) float64

// crossing locates the boundary point on a straddling segment
type crossing func(a, b profile.Station) (profile.Station, bool)

// halfPlane keeps the part of every run of c that lies on or inside the
// boundary described by in
func halfPlane(c profile.Clipped, in side, cross crossing) profile.Clipped {
	var b profile.Builder

	for ri := range c.Runs {
		run := c.Run(ri)
		for i, st := range run {
			cur := in(st)
			if i > 0 {
				prev := in(run[i-1])
				if straddles(prev, cur) {
					if x, ok := cross(run[i-1], st); ok {
						b.Add(x)
					}
				}
			}
			if cur >= 0 {
				b.Add(st)
			} else {
				b.Break()
			}
		}
		b.Break()
	}

	return b.Clipped()
}

func straddles(a, b float64) bool {
	return (a > 0 && b < 0) || (a < 0 && b > 0)
}
