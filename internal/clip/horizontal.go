package clip

import (
	"fmt"

	"github.com/planbiir/profcalc/internal/profile"
)

// Horizontal clips s to [b.X0, b.X1] under b.Policy.
//
// Truncate drops everything outside the limits, interpolating a station at
// each limit a segment crosses. ExtendFlat truncates the same way and then,
// for each limit beyond the surveyed range, adds a station at the limit
// carrying the elevation of the surveyed station at that x extreme. The
// extension out to X1 is put in a run of its own so that its segment
// contributes no area; the extension out to X0 is integrated normally, with
// its sign following the direction of travel.
func Horizontal(s profile.Series, b profile.HorizontalBound) (profile.Clipped, error) {
	if err := b.Validate(); err != nil {
		return profile.Clipped{}, fmt.Errorf("clip horizontal: %w", err)
	}
	if len(s) == 0 {
		return profile.Clipped{}, nil
	}

	lo, hi := s.XRange()
	if b.Policy == profile.Skip && (b.X0 < lo || b.X1 > hi) {
		return profile.Clipped{}, fmt.Errorf("clip horizontal: [%g, %g] vs survey [%g, %g]: %w",
			b.X0, b.X1, lo, hi, profile.ErrOutOfRange)
	}

	c := Within(s.Whole(), b.X0, b.X1)
	if b.Policy != profile.ExtendFlat {
		return c, nil
	}
	return extendFlat(c, s, b, lo, hi), nil
}

// Within keeps the part of c with x0 <= X <= x1
func Within(c profile.Clipped, x0, x1 float64) profile.Clipped {
	c = halfPlane(c,
		func(st profile.Station) float64 { return st.X - x0 },
		func(a, b profile.Station) (profile.Station, bool) { return AtX(a, b, x0) },
	)
	return halfPlane(c,
		func(st profile.Station) float64 { return x1 - st.X },
		func(a, b profile.Station) (profile.Station, bool) { return AtX(a, b, x1) },
	)
}

func extendFlat(c profile.Clipped, s profile.Series, b profile.HorizontalBound, lo, hi float64) profile.Clipped {
	first, ok := c.First()
	if !ok {
		// Survey lies wholly outside the limits: a flat line at the elevation
		// of the endpoint nearest the requested range.
		z := nearestEndZ(s, b, lo)
		var bl profile.Builder
		bl.Add(profile.Station{X: b.X0, Z: z})
		bl.Add(profile.Station{X: b.X1, Z: z})
		return bl.Clipped()
	}
	last, _ := c.Last()
	kept := c.Series()
	needLo, needHi := b.X0 < lo, b.X1 > hi
	ascending := s.Ascending()

	var bl profile.Builder

	// Extensions that come before the surveyed stations in traversal order
	if ascending && needLo {
		z := zAtX(kept, lo, true)
		bl.Add(profile.Station{X: b.X0, Z: z})
		if first.X != lo {
			// The survey does not start at its landward extreme; close the
			// extension there instead of drawing it over surveyed ground.
			bl.Add(profile.Station{X: lo, Z: z})
			bl.Break()
		}
	}
	if !ascending && needHi {
		bl.Add(profile.Station{X: b.X1, Z: zAtX(kept, hi, true)})
		bl.Break()
	}

	for ri := range c.Runs {
		for _, st := range c.Run(ri) {
			bl.Add(st)
		}
		if ri < len(c.Runs)-1 {
			bl.Break()
		}
	}

	// Extensions that come after
	if ascending && needHi {
		bl.Break()
		bl.Add(profile.Station{X: b.X1, Z: zAtX(kept, hi, false)})
	}
	if !ascending && needLo {
		z := zAtX(kept, lo, false)
		if last.X != lo {
			bl.Break()
			bl.Add(profile.Station{X: lo, Z: z})
		}
		bl.Add(profile.Station{X: b.X0, Z: z})
	}
	return bl.Clipped()
}

// zAtX returns the elevation of the first (or, with first unset, the last)
// station in traversal order lying exactly at x
func zAtX(s profile.Series, x float64, first bool) float64 {
	if first {
		for _, st := range s {
			if st.X == x {
				return st.Z
			}
		}
		return s[0].Z
	}
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].X == x {
			return s[i].Z
		}
	}
	return s[len(s)-1].Z
}

// nearestEndZ picks the elevation at the surveyed extreme closest to the
// requested limits when the two do not overlap at all
func nearestEndZ(s profile.Series, b profile.HorizontalBound, lo float64) float64 {
	var best profile.Station
	found := false
	for _, st := range s {
		if !found {
			best, found = st, true
			continue
		}
		if b.X1 < lo {
			if st.X < best.X {
				best = st
			}
		} else if st.X > best.X {
			best = st
		}
	}
	return best.Z
}
