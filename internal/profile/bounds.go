package profile

import (
	"fmt"
	"strings"
)

// ElevationKind selects between a single contour and a two-level band
type ElevationKind int

const (
	KindContour ElevationKind = iota
	KindBand
)

// ElevationBound is either Contour(Z) or Band(Low, High)
type ElevationBound struct {
	Kind ElevationKind
	Z    float64 // contour elevation
	Low  float64 // band floor
	High float64 // band ceiling
}

// Contour returns a single-level elevation bound
func Contour(z float64) ElevationBound {
	return ElevationBound{Kind: KindContour, Z: z}
}

// Band returns a two-level elevation bound
func Band(low, high float64) ElevationBound {
	return ElevationBound{Kind: KindBand, Low: low, High: high}
}

// Floor is the lowest elevation the bound admits
func (b ElevationBound) Floor() float64 {
	if b.Kind == KindBand {
		return b.Low
	}
	return b.Z
}

// Validate checks the band ordering
func (b ElevationBound) Validate() error {
	switch b.Kind {
	case KindContour:
		return nil
	case KindBand:
		if b.Low > b.High {
			return fmt.Errorf("%w: band low %g > high %g", ErrInvalidBound, b.Low, b.High)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown elevation bound kind %d", ErrInvalidBound, b.Kind)
	}
}

func (b ElevationBound) String() string {
	if b.Kind == KindBand {
		return fmt.Sprintf("band[%g, %g]", b.Low, b.High)
	}
	return fmt.Sprintf("contour(%g)", b.Z)
}

// Policy controls what happens when a horizontal limit lies outside the survey
type Policy int

const (
	// Truncate clips to the overlap of [X0, X1] and the surveyed range
	Truncate Policy = iota
	// ExtendFlat holds the terminal elevation out to the requested limit
	ExtendFlat
	// Skip rejects the profile with ErrOutOfRange
	Skip
)

func (p Policy) String() string {
	switch p {
	case Truncate:
		return "truncate"
	case ExtendFlat:
		return "extend"
	case Skip:
		return "skip"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy accepts the names produced by Policy.String plus a few
// aliases ("clip", "flat", "extend-flat")
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "truncate", "clip":
		return Truncate, nil
	case "extend", "extendflat", "extend-flat", "flat":
		return ExtendFlat, nil
	case "skip":
		return Skip, nil
	default:
		return Truncate, fmt.Errorf("unknown out-of-range policy %q", s)
	}
}

// HorizontalBound limits a profile to [X0, X1]
type HorizontalBound struct {
	X0, X1 float64
	Policy Policy
}

// Validate requires X1 > X0
func (b HorizontalBound) Validate() error {
	if !(b.X1 > b.X0) {
		return fmt.Errorf("%w: x1 %g <= x0 %g", ErrInvalidBound, b.X1, b.X0)
	}
	switch b.Policy {
	case Truncate, ExtendFlat, Skip:
		return nil
	default:
		return fmt.Errorf("%w: unknown policy %d", ErrInvalidBound, int(b.Policy))
	}
}
