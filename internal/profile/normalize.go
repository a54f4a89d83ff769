package profile

import "math"

// NormalizeOptions tunes duplicate detection
type NormalizeOptions struct {
	// Tolerance is the largest |dX| and |dZ| at which two consecutive stations
	// still count as duplicates. Zero means exact equality, which is what
	// every area computation expects: merging near-equal X values drops the
	// vertical faces of stepwise profiles.
	Tolerance float64
}

// Normalize removes consecutive exact duplicates and keeps everything else,
// in the original order
func Normalize(raw []Station) (Series, error) {
	return NormalizeWith(raw, NormalizeOptions{})
}

// NormalizeWith is Normalize with explicit options
func NormalizeWith(raw []Station, opts NormalizeOptions) (Series, error) {
	if len(raw) == 0 {
		return nil, ErrEmptySeries
	}

	out := make(Series, 0, len(raw))
	out = append(out, raw[0])
	for _, st := range raw[1:] {
		if duplicate(out[len(out)-1], st, opts.Tolerance) {
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

func duplicate(a, b Station, tol float64) bool {
	if tol <= 0 {
		return a.X == b.X && a.Z == b.Z
	}
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Z-b.Z) <= tol
}
