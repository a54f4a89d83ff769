package profile

import "math"

// Station is a single surveyed sample: horizontal distance and elevation
type Station struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Series is an ordered cross-shore profile. Order is survey order, not x order:
// vertical runs (equal X, different Z) and backtracking are legal.
type Series []Station

// Run is a half-open index range [Start, End) into Clipped.Stations
type Run struct {
	Start, End int
}

// Len returns the number of stations in the run
func (r Run) Len() int { return r.End - r.Start }

// Clipped is the output of a clipper: an arena of stations plus the runs that
// partition it. Consecutive stations inside one run form a segment; there is
// no segment across a run boundary.
type Clipped struct {
	Stations []Station
	Runs     []Run
}

// Len returns the number of stations in the series
func (s Series) Len() int { return len(s) }

// XRange returns the smallest and largest X in the series.
// An empty series returns NaN for both.
func (s Series) XRange() (lo, hi float64) {
	if len(s) == 0 {
		return math.NaN(), math.NaN()
	}
	lo, hi = s[0].X, s[0].X
	for _, st := range s[1:] {
		lo = math.Min(lo, st.X)
		hi = math.Max(hi, st.X)
	}
	return lo, hi
}

// Ascending reports whether the series is traversed left to right,
// judged by its endpoints.
func (s Series) Ascending() bool {
	if len(s) < 2 {
		return true
	}
	return s[0].X <= s[len(s)-1].X
}

// Monotonic reports whether X never decreases along the series
func (s Series) Monotonic() bool {
	for i := 1; i < len(s); i++ {
		if s[i].X < s[i-1].X {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no memory with s
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// Xs returns the horizontal distances in series order
func (s Series) Xs() []float64 {
	xs := make([]float64, len(s))
	for i, st := range s {
		xs[i] = st.X
	}
	return xs
}

// Zs returns the elevations in series order
func (s Series) Zs() []float64 {
	zs := make([]float64, len(s))
	for i, st := range s {
		zs[i] = st.Z
	}
	return zs
}

// Whole wraps a series as a single-run Clipped
func (s Series) Whole() Clipped {
	if len(s) == 0 {
		return Clipped{}
	}
	return Clipped{
		Stations: s.Clone(),
		Runs:     []Run{{Start: 0, End: len(s)}},
	}
}

// Len returns the number of stations across all runs
func (c Clipped) Len() int {
	n := 0
	for _, r := range c.Runs {
		n += r.Len()
	}
	return n
}

// Run returns the stations of run i
func (c Clipped) Run(i int) []Station {
	r := c.Runs[i]
	return c.Stations[r.Start:r.End]
}

// Series flattens every run back into one ordered series
func (c Clipped) Series() Series {
	out := make(Series, 0, c.Len())
	for i := range c.Runs {
		out = append(out, c.Run(i)...)
	}
	return out
}

// First returns the first station of the first run
func (c Clipped) First() (Station, bool) {
	for i := range c.Runs {
		if c.Runs[i].Len() > 0 {
			return c.Stations[c.Runs[i].Start], true
		}
	}
	return Station{}, false
}

// Last returns the last station of the last run
func (c Clipped) Last() (Station, bool) {
	for i := len(c.Runs) - 1; i >= 0; i-- {
		if c.Runs[i].Len() > 0 {
			return c.Stations[c.Runs[i].End-1], true
		}
	}
	return Station{}, false
}

// Builder accumulates stations into runs. The zero value is ready to use.
type Builder struct {
	c    Clipped
	open bool
}

// Add appends a station to the current run, opening one if needed
func (b *Builder) Add(st Station) {
	if !b.open {
		b.c.Runs = append(b.c.Runs, Run{Start: len(b.c.Stations), End: len(b.c.Stations)})
		b.open = true
	}
	b.c.Stations = append(b.c.Stations, st)
	b.c.Runs[len(b.c.Runs)-1].End++
}

// Break closes the current run; the next Add starts a new one
func (b *Builder) Break() {
	b.open = false
}

// Clipped returns the accumulated result
func (b *Builder) Clipped() Clipped {
	return b.c
}
