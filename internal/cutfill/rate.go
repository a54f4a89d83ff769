package cutfill

import (
	"errors"
	"math"
	"time"
)

// DaysPerYear is the year length used to turn survey intervals into years
const DaysPerYear = 365.25

// ErrNoInterval means two surveys share a date, so no rate exists
var ErrNoInterval = errors.New("surveys are not separated in time")

// YearsBetween returns the absolute interval between two survey dates in
// 365.25-day years
func YearsBetween(a, b time.Time) float64 {
	days := b.Sub(a).Hours() / 24
	return math.Abs(days) / DaysPerYear
}

// AnnualRate converts a net change (fill positive) into an annual erosion
// rate, positive when material was lost: -net / years
func AnnualRate(net float64, before, after time.Time) (float64, error) {
	years := YearsBetween(before, after)
	if years <= 0 {
		return math.NaN(), ErrNoInterval
	}
	return -net / years, nil
}
