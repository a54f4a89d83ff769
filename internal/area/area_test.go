package area

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/planbiir/profcalc/internal/clip"
	"github.com/planbiir/profcalc/internal/profile"
)

const tol = 1e-9

func TestIntegrateDegenerate(t *testing.T) {
	assert.Equal(t, 0.0, Integrate(profile.Clipped{}, 0))
	assert.Equal(t, 0.0, IntegrateSeries(profile.Series{{X: 3, Z: 7}}, 0))
}

func TestIntegrateSignFollowsTraversal(t *testing.T) {
	s := profile.Series{{X: 0, Z: 2}, {X: 10, Z: 4}, {X: 30, Z: 0}}
	fwd := IntegrateSeries(s, 0)
	assert.InDelta(t, 30+40, fwd, tol)

	rev := make(profile.Series, len(s))
	for i := range s {
		rev[len(s)-1-i] = s[i]
	}
	assert.InDelta(t, -fwd, IntegrateSeries(rev, 0), tol)
}

func TestIntegrateReference(t *testing.T) {
	s := profile.Series{{X: 0, Z: 5}, {X: 10, Z: 5}}
	assert.InDelta(t, 30.0, IntegrateSeries(s, 2), tol)
}

func TestIntegrateSkipsRunBoundaries(t *testing.T) {
	c := profile.Clipped{
		Stations: []profile.Station{{X: 0, Z: 1}, {X: 10, Z: 1}, {X: 20, Z: 100}, {X: 30, Z: 100}},
		Runs:     []profile.Run{{Start: 0, End: 2}, {Start: 2, End: 4}},
	}
	assert.Equal(t, []float64{10, 1000}, Segments(c, 0))
	assert.InDelta(t, 1010.0, Integrate(c, 0), tol)
}

func TestAboveContourZigzagScenario(t *testing.T) {
	s := profile.Series{{X: 0, Z: 5}, {X: 10, Z: -5}, {X: 20, Z: 5}}
	assert.InDelta(t, 25.0, AboveContour(s, 0), tol)
}

func TestAboveContourStepwiseScenario(t *testing.T) {
	s := profile.Series{{X: 10, Z: 2}, {X: 10, Z: 6}, {X: 20, Z: 6}}
	assert.InDelta(t, 20.0, AboveContour(s, 4), tol)
}

func TestAboveContourEntirelyBelowIsZero(t *testing.T) {
	profiles := []profile.Series{
		{{X: 0, Z: -1}, {X: 10, Z: -3}, {X: 20, Z: -0.5}},
		{{X: 0, Z: -1}},
		{{X: 5, Z: 2}, {X: 5, Z: 1}, {X: 7, Z: 0}},
	}
	for _, s := range profiles {
		assert.Equal(t, 0.0, AboveContour(s, 2.5), "%v", s)
	}
}

// manualAbove integrates max(z-c, 0) segment by segment, splitting any
// segment that crosses c into its above and below parts by hand.
func manualAbove(s profile.Series, c float64) float64 {
	var total float64
	for i := 1; i < len(s); i++ {
		a, b := s[i-1], s[i]
		ha, hb := a.Z-c, b.Z-c
		dx := b.X - a.X
		switch {
		case ha >= 0 && hb >= 0:
			total += (ha + hb) / 2 * dx
		case ha <= 0 && hb <= 0:
		case ha > 0:
			frac := ha / (ha - hb)
			total += ha / 2 * dx * frac
		default:
			frac := hb / (hb - ha)
			total += hb / 2 * dx * frac
		}
	}
	return total
}

func TestMultiCrossingConservation(t *testing.T) {
	var s profile.Series
	for i := range 41 {
		z := float64(i%3+1) * 1.7
		if i%2 == 1 {
			z = -z
		}
		s = append(s, profile.Station{X: 12.5 * float64(i), Z: z})
	}
	crossings := Crossings(s, 0)
	require.Len(t, crossings, 40)

	c := clip.Above(s.Whole(), 0)
	require.Len(t, c.Runs, 21)

	perRun := make([]float64, len(c.Runs))
	for i := range c.Runs {
		perRun[i] = IntegrateSeries(profile.Series(c.Run(i)), 0)
	}

	got := AboveContour(s, 0)
	assert.InDelta(t, floats.Sum(perRun), got, 1e-6)
	assert.InDelta(t, manualAbove(s, 0), got, 1e-6)
}

// clampedBand is the band area computed the slow way: insert every crossing
// of both levels into a monotonic profile and integrate clamp(z) - low.
func clampedBand(s profile.Series, low, high float64) float64 {
	pts := append(profile.Series(nil), s...)
	for i := 1; i < len(s); i++ {
		for _, lv := range []float64{low, high} {
			if (s[i-1].Z-lv)*(s[i].Z-lv) < 0 {
				st, _ := clip.AtZ(s[i-1], s[i], lv)
				pts = append(pts, st)
			}
		}
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
	for i := range pts {
		pts[i].Z = math.Min(math.Max(pts[i].Z, low), high)
	}
	return IntegrateSeries(pts, low)
}

func TestInBandSimple(t *testing.T) {
	s := profile.Series{{X: 0, Z: 4}, {X: 10, Z: 0}}
	got, err := InBand(s, 1, 3)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got, tol)
}

func TestInBandMultiCrossing(t *testing.T) {
	s := profile.Series{
		{X: 0, Z: 6}, {X: 10, Z: -1}, {X: 20, Z: 4}, {X: 30, Z: 1.5},
		{X: 40, Z: 5}, {X: 50, Z: 0}, {X: 60, Z: 2}, {X: 70, Z: -3},
	}
	got, err := InBand(s, 1, 3)
	require.NoError(t, err)
	assert.InDelta(t, clampedBand(s, 1, 3), got, 1e-9)
}

func TestInBandInvalid(t *testing.T) {
	_, err := InBand(profile.Series{{X: 0, Z: 1}, {X: 1, Z: 1}}, 3, 1)
	assert.ErrorIs(t, err, profile.ErrInvalidBound)
}

func TestBelowContour(t *testing.T) {
	s := profile.Series{{X: 0, Z: 5}, {X: 10, Z: -5}, {X: 20, Z: 5}}
	assert.InDelta(t, -25.0, BelowContour(s, 0), tol)
}

func TestBetweenExtendFlatScenario(t *testing.T) {
	s := profile.Series{{X: 0, Z: 10}, {X: 100, Z: 8}}
	hb := profile.HorizontalBound{X0: -50, X1: 150, Policy: profile.ExtendFlat}

	c, err := clip.Horizontal(s, hb)
	require.NoError(t, err)
	segs := Segments(c, 0)
	require.Len(t, segs, 2)
	assert.InDelta(t, 500.0, segs[0], tol, "leading extension is integrated")
	assert.InDelta(t, 900.0, segs[1], tol)

	got, err := Between(s, hb, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1400.0, got, tol, "trailing extension (nominally 400) contributes nothing")
}

func TestBetweenExtendFlatReversedNegates(t *testing.T) {
	asc := profile.Series{{X: 0, Z: 10}, {X: 100, Z: 8}}
	desc := profile.Series{{X: 100, Z: 8}, {X: 0, Z: 10}}
	hb := profile.HorizontalBound{X0: -50, X1: 150, Policy: profile.ExtendFlat}

	up, err := Between(asc, hb, nil)
	require.NoError(t, err)
	down, err := Between(desc, hb, nil)
	require.NoError(t, err)

	assert.InDelta(t, 1400.0, up, tol)
	assert.InDelta(t, -up, down, tol)

	eb := profile.Contour(9)
	up, err = Between(asc, hb, &eb)
	require.NoError(t, err)
	down, err = Between(desc, hb, &eb)
	require.NoError(t, err)
	assert.InDelta(t, -up, down, tol)
}

func TestBetweenExtendFlatUsesLandwardExtreme(t *testing.T) {
	s := profile.Series{{X: 0, Z: 5}, {X: -10, Z: 3}, {X: 20, Z: 1}}
	hb := profile.HorizontalBound{X0: -50, X1: 20, Policy: profile.ExtendFlat}

	got, err := Between(s, hb, nil)
	require.NoError(t, err)
	// 40 wide at z=3, then the survey itself: -40 + 60
	assert.InDelta(t, 140.0, got, tol)
}

func TestTruncateIsSubsetOfExtend(t *testing.T) {
	s := profile.Series{{X: 0, Z: 10}, {X: 40, Z: 6}, {X: 70, Z: 9}, {X: 100, Z: 8}}
	hb := profile.HorizontalBound{X0: -50, X1: 150}

	hb.Policy = profile.Truncate
	truncated, err := Between(s, hb, nil)
	require.NoError(t, err)

	hb.Policy = profile.ExtendFlat
	c, err := clip.Horizontal(s, hb)
	require.NoError(t, err)
	segs := Segments(c, 0)

	// Leading extension first, then the surveyed segments.
	require.Len(t, segs, 1+len(s)-1)
	assert.InDelta(t, truncated, floats.Sum(segs[1:]), tol)
	assert.InDelta(t, 10*50.0, segs[0], tol)
}

func TestBetweenWithContour(t *testing.T) {
	s := profile.Series{{X: 0, Z: 10}, {X: 100, Z: 8}}
	hb := profile.HorizontalBound{X0: -50, X1: 150, Policy: profile.ExtendFlat}
	eb := profile.Contour(9)
	got, err := Between(s, hb, &eb)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, got, tol)
}

func TestBetweenWithBand(t *testing.T) {
	s := profile.Series{{X: 0, Z: 4}, {X: 10, Z: 0}, {X: 20, Z: 4}}
	hb := profile.HorizontalBound{X0: 0, X1: 10, Policy: profile.Truncate}
	eb := profile.Band(1, 3)
	got, err := Between(s, hb, &eb)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got, tol)
}

func TestBetweenErrors(t *testing.T) {
	s := profile.Series{{X: 0, Z: 10}, {X: 100, Z: 8}}
	_, err := Between(s, profile.HorizontalBound{X0: 10, X1: 0}, nil)
	assert.ErrorIs(t, err, profile.ErrInvalidBound)

	_, err = Between(s, profile.HorizontalBound{X0: -10, X1: 50, Policy: profile.Skip}, nil)
	assert.ErrorIs(t, err, profile.ErrOutOfRange)

	eb := profile.Band(5, 4)
	_, err = Between(s, profile.HorizontalBound{X0: 0, X1: 50}, &eb)
	assert.ErrorIs(t, err, profile.ErrInvalidBound)
}

func TestCrossings(t *testing.T) {
	s := profile.Series{{X: 0, Z: 5}, {X: 10, Z: -5}, {X: 20, Z: 5}, {X: 30, Z: 0}, {X: 40, Z: -1}}
	assert.Equal(t, []float64{5, 15, 30}, Crossings(s, 0))

	x, ok := SeawardCrossing(s, 0)
	require.True(t, ok)
	assert.Equal(t, 30.0, x)

	_, ok = SeawardCrossing(s, 100)
	assert.False(t, ok)
}

func TestCubicYardsPerFoot(t *testing.T) {
	assert.Equal(t, 1.0, CubicYardsPerFoot(27))
}

func TestEvaluateContourInsideHorizontalLimits(t *testing.T) {
	raw := []profile.Station{{X: 0, Z: 5}, {X: 10, Z: 1}, {X: 20, Z: 1}, {X: 30, Z: -1}}
	eb := profile.Contour(0)

	hb := profile.HorizontalBound{X0: 0, X1: 15}
	res, err := Evaluate(raw, Request{Horizontal: &hb, Elevation: &eb})
	require.NoError(t, err)
	assert.InDelta(t, 35.0, res.Area, tol)
	assert.Nil(t, res.ContourX, "the only crossing, x=25, lies outside the limits")

	hb = profile.HorizontalBound{X0: 0, X1: 30}
	res, err = Evaluate(raw, Request{Horizontal: &hb, Elevation: &eb})
	require.NoError(t, err)
	require.NotNil(t, res.ContourX)
	assert.InDelta(t, 25.0, *res.ContourX, tol)
}

func TestEvaluate(t *testing.T) {
	raw := []profile.Station{{X: 0, Z: 5}, {X: 0, Z: 5}, {X: 10, Z: -5}, {X: 20, Z: 5}}
	eb := profile.Contour(0)

	res, err := Evaluate(raw, Request{Elevation: &eb})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Stations)
	assert.Equal(t, 0.0, res.XMin)
	assert.Equal(t, 20.0, res.XMax)
	assert.InDelta(t, 25.0, res.Area, tol)
	assert.InDelta(t, 25.0/27, res.CubicYardsPerFoot, tol)
	require.NotNil(t, res.ContourX)
	assert.Equal(t, 15.0, *res.ContourX)

	hb := profile.HorizontalBound{X0: 0, X1: 10}
	res, err = Evaluate(raw, Request{Horizontal: &hb})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.Area, tol)
	assert.Nil(t, res.ContourX)

	res, err = Evaluate(raw, Request{})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.Area, tol)

	_, err = Evaluate(nil, Request{})
	assert.ErrorIs(t, err, profile.ErrEmptySeries)
}
