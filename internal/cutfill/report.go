package cutfill

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/planbiir/profcalc/internal/area"
	"github.com/planbiir/profcalc/internal/profile"
)

// Options controls the detailed comparison
type Options struct {
	// Datum splits the net change into above- and below-datum parts and is
	// the elevation whose seaward-most crossing marks the shoreline
	Datum float64

	// Bound, when set, restricts the net change to material inside it
	Bound *profile.ElevationBound
}

// DefaultOptions compares against datum zero with no elevation bound
func DefaultOptions() Options {
	return Options{Datum: 0}
}

// Cell is one grid interval of the detailed comparison
type Cell struct {
	StartX    float64 `json:"start_x"`
	EndX      float64 `json:"end_x"`
	EndZB     float64 `json:"end_z2"`
	Area      float64 `json:"cell_area"`
	Thickness float64 `json:"cell_thickness"`
	Net       float64 `json:"cum_net"`
	Gross     float64 `json:"cum_gross"`
}

// Report is the detailed cut and fill between two surveys
type Report struct {
	XOn  float64 `json:"x_on"`
	XOff float64 `json:"x_off"`

	// Net is fill minus cut over the common range (or inside Options.Bound)
	Net  float64 `json:"net"`
	Fill float64 `json:"fill"`
	Cut  float64 `json:"cut"`

	AboveDatum float64 `json:"above_datum"`
	BelowDatum float64 `json:"below_datum"`

	ShorelineA      *float64 `json:"shoreline_from_x,omitempty"`
	ShorelineB      *float64 `json:"shoreline_to_x,omitempty"`
	ShorelineChange *float64 `json:"shoreline_change,omitempty"`

	Cells []Cell `json:"cells"`
}

// Detailed compares a (earlier) with b (later) cell by cell
func Detailed(a, b profile.Series, opts Options) (Report, error) {
	g, err := Resample(a, b)
	if err != nil {
		return Report{}, fmt.Errorf("cut/fill: %w", err)
	}
	diff := g.Diff()
	segs := area.Segments(diff.Whole(), 0)

	rep := Report{
		XOn:  g.X[0],
		XOff: g.X[g.Len()-1],
	}

	for i := 1; i < len(diff); i++ {
		fill, cut := splitAtZero(diff[i-1], diff[i])
		rep.Fill += fill
		rep.Cut -= cut
	}

	if opts.Bound != nil {
		rep.Net, err = Difference(a, b, opts.Bound)
		if err != nil {
			return Report{}, fmt.Errorf("cut/fill: %w", err)
		}
	} else {
		rep.Net = floats.Sum(segs)
	}

	datum := profile.Contour(opts.Datum)
	rep.AboveDatum, err = Difference(a, b, &datum)
	if err != nil {
		return Report{}, fmt.Errorf("cut/fill: %w", err)
	}
	rep.BelowDatum = floats.Sum(segs) - rep.AboveDatum

	xa, okA := area.SeawardCrossing(ordered(a), opts.Datum)
	xb, okB := area.SeawardCrossing(ordered(b), opts.Datum)
	if okA {
		rep.ShorelineA = &xa
	}
	if okB {
		rep.ShorelineB = &xb
	}
	if okA && okB {
		change := xb - xa
		rep.ShorelineChange = &change
	}

	rep.Cells = cells(g, diff, segs)
	return rep, nil
}

func cells(g Grid, diff profile.Series, segs []float64) []Cell {
	if len(segs) == 0 {
		return nil
	}
	net := make([]float64, len(segs))
	floats.CumSum(net, segs)

	abs := make([]float64, len(segs))
	for i, v := range segs {
		abs[i] = math.Abs(v)
	}
	gross := make([]float64, len(segs))
	floats.CumSum(gross, abs)

	out := make([]Cell, len(segs))
	for i := range segs {
		out[i] = Cell{
			StartX:    g.X[i],
			EndX:      g.X[i+1],
			EndZB:     g.ZB[i+1],
			Area:      segs[i],
			Thickness: (diff[i].Z + diff[i+1].Z) / 2,
			Net:       net[i],
			Gross:     gross[i],
		}
	}
	return out
}

// splitAtZero divides the trapezoid under p→q into its part with positive
// height and its part with negative height, splitting where the height
// changes sign. For a left-to-right segment the first result is >= 0 and the
// second <= 0.
func splitAtZero(p, q profile.Station) (pos, neg float64) {
	dx := q.X - p.X
	switch {
	case p.Z >= 0 && q.Z >= 0:
		return (p.Z + q.Z) / 2 * dx, 0
	case p.Z <= 0 && q.Z <= 0:
		return 0, (p.Z + q.Z) / 2 * dx
	}
	x0 := p.X + (q.X-p.X)*(0-p.Z)/(q.Z-p.Z)
	first := p.Z / 2 * (x0 - p.X)
	second := q.Z / 2 * (q.X - x0)
	if p.Z > 0 {
		return first, second
	}
	return second, first
}
