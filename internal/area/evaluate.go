package area

import (
	"github.com/planbiir/profcalc/internal/profile"
)

// Request selects which bounds apply to one profile. Nil fields are unbounded.
type Request struct {
	Horizontal *profile.HorizontalBound
	Elevation  *profile.ElevationBound

	// Normalize tunes duplicate removal before clipping
	Normalize profile.NormalizeOptions
}

// Result is the per-profile outcome of Evaluate
type Result struct {
	Stations int     `json:"stations"`
	XMin     float64 `json:"x_min"`
	XMax     float64 `json:"x_max"`

	Area              float64 `json:"area"`
	CubicYardsPerFoot float64 `json:"volume_cuyd_per_ft"`

	// ContourX is the seaward-most crossing of the contour (or band floor),
	// nil when the profile never meets it
	ContourX *float64 `json:"contour_x,omitempty"`
}

// Evaluate normalizes raw and computes the bounded area
func Evaluate(raw []profile.Station, req Request) (Result, error) {
	s, err := profile.NormalizeWith(raw, req.Normalize)
	if err != nil {
		return Result{}, err
	}

	res := Result{Stations: len(s)}
	res.XMin, res.XMax = s.XRange()

	switch {
	case req.Horizontal != nil:
		res.Area, err = Between(s, *req.Horizontal, req.Elevation)
	case req.Elevation != nil:
		res.Area, err = AboveElevation(s, *req.Elevation)
	default:
		res.Area = IntegrateSeries(s, 0)
	}
	if err != nil {
		return Result{}, err
	}
	res.CubicYardsPerFoot = CubicYardsPerFoot(res.Area)

	if req.Elevation != nil {
		if x, ok := contourX(s, req.Elevation.Floor(), req.Horizontal); ok {
			res.ContourX = &x
		}
	}
	return res, nil
}

// contourX is the seaward-most crossing of z, limited to [X0, X1] when a
// horizontal bound is set
func contourX(s profile.Series, z float64, hb *profile.HorizontalBound) (float64, bool) {
	if hb == nil {
		return SeawardCrossing(s, z)
	}
	var best float64
	found := false
	for _, x := range Crossings(s, z) {
		if x < hb.X0 || x > hb.X1 {
			continue
		}
		if !found || x > best {
			best, found = x, true
		}
	}
	return best, found
}
