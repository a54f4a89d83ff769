// Package cutfill compares two surveys of the same profile: it resamples
// both onto a shared station grid over their common horizontal range and
// integrates the elevation difference. Positive results are fill (the second
// survey is higher), negative results are cut.
package cutfill

import (
	"fmt"
	"sort"

	"github.com/planbiir/profcalc/internal/clip"
	"github.com/planbiir/profcalc/internal/profile"
)

// Grid holds two profiles sampled at the same stations
type Grid struct {
	X  []float64
	ZA []float64
	ZB []float64
}

// Len returns the number of shared stations
func (g Grid) Len() int { return len(g.X) }

// Diff returns the series (x, zb - za)
func (g Grid) Diff() profile.Series {
	out := make(profile.Series, len(g.X))
	for i := range g.X {
		out[i] = profile.Station{X: g.X[i], Z: g.ZB[i] - g.ZA[i]}
	}
	return out
}

func (g *Grid) add(x, za, zb float64) {
	g.X = append(g.X, x)
	g.ZA = append(g.ZA, za)
	g.ZB = append(g.ZB, zb)
}

// Resample puts a and b on the union of their x values, restricted to the
// range both surveys cover. Each series gets an interpolated station at
// every x the other has. Vertical runs stay in place: where one survey has
// several stations at the same x the other is repeated alongside them.
func Resample(a, b profile.Series) (Grid, error) {
	if len(a) == 0 || len(b) == 0 {
		return Grid{}, fmt.Errorf("resample: %w", profile.ErrEmptySeries)
	}
	a, b = ordered(a), ordered(b)

	lo := max(a[0].X, b[0].X)
	hi := min(a[len(a)-1].X, b[len(b)-1].X)
	if lo > hi {
		return Grid{}, fmt.Errorf("resample: [%g, %g] and [%g, %g]: %w",
			a[0].X, a[len(a)-1].X, b[0].X, b[len(b)-1].X, profile.ErrNoOverlap)
	}

	ta := clip.Within(a.Whole(), lo, hi).Series()
	tb := clip.Within(b.Whole(), lo, hi).Series()
	return mergeStations(ta, tb), nil
}

// mergeStations walks two x-sorted series that start and end at the same x,
// the way two time-ordered tracks are merged: always emit the smaller x and
// interpolate the other series there
func mergeStations(ta, tb profile.Series) Grid {
	g := Grid{
		X:  make([]float64, 0, len(ta)+len(tb)),
		ZA: make([]float64, 0, len(ta)+len(tb)),
		ZB: make([]float64, 0, len(ta)+len(tb)),
	}

	i, j := 0, 0
	for i < len(ta) && j < len(tb) {
		xa, xb := ta[i].X, tb[j].X
		switch {
		case xa == xb:
			g.add(xa, ta[i].Z, tb[j].Z)
			moreA := i+1 < len(ta) && ta[i+1].X == xa
			moreB := j+1 < len(tb) && tb[j+1].X == xb
			switch {
			case moreA && !moreB:
				i++
			case moreB && !moreA:
				j++
			default:
				i++
				j++
			}
		case xa < xb:
			g.add(xa, ta[i].Z, zAt(tb, j, xa))
			i++
		default:
			g.add(xb, zAt(ta, i, xb), tb[j].Z)
			j++
		}
	}

	return g
}

// zAt interpolates s at x, where s[j-1].X < x < s[j].X
func zAt(s profile.Series, j int, x float64) float64 {
	if j == 0 {
		return s[0].Z
	}
	if st, ok := clip.AtX(s[j-1], s[j], x); ok {
		return st.Z
	}
	return s[j].Z
}

// ordered returns s with x non-decreasing. A series surveyed right to left
// is reversed; one that backtracks is stably sorted so that vertical runs
// keep their survey order.
func ordered(s profile.Series) profile.Series {
	if s.Monotonic() {
		return s
	}
	if nonIncreasing(s) {
		out := make(profile.Series, len(s))
		for i := range s {
			out[len(s)-1-i] = s[i]
		}
		return out
	}
	out := s.Clone()
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

func nonIncreasing(s profile.Series) bool {
	for i := 1; i < len(s); i++ {
		if s[i].X > s[i-1].X {
			return false
		}
	}
	return true
}
