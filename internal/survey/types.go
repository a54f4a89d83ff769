package survey

import (
	"fmt"
	"strings"
	"time"

	"github.com/planbiir/profcalc/internal/profile"
)

// Station is one surveyed point stored as [x, z]
type Station [2]float64

// Profile is a single cross-shore survey line on a given date
type Profile struct {
	Name        string    `json:"name"`
	Date        string    `json:"date,omitempty"`
	Description string    `json:"description,omitempty"`
	Stations    []Station `json:"stations"`
}

// Document is the on-disk set of profiles
type Document struct {
	Creator  string    `json:"creator,omitempty"`
	Profiles []Profile `json:"profiles"`
}

// dateLayouts are tried in order when reading Profile.Date
var dateLayouts = []string{
	"2006-01-02",
	"20060102",
	"01022006",
	"2006-01-02T15:04:05Z07:00",
}

// Header returns the one-line profile header, "NAME DATE DESCRIPTION"
func (p Profile) Header() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Name, p.Date, p.Description} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Time parses the survey date
func (p Profile) Time() (time.Time, error) {
	d := strings.TrimSpace(p.Date)
	if d == "" {
		return time.Time{}, fmt.Errorf("profile %q: %w", p.Name, ErrNoDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, d); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("profile %q: unrecognised date %q", p.Name, p.Date)
}

// Raw returns the stations as read, without cleaning
func (p Profile) Raw() []profile.Station {
	out := make([]profile.Station, len(p.Stations))
	for i, st := range p.Stations {
		out[i] = profile.Station{X: st[0], Z: st[1]}
	}
	return out
}

// Series returns the normalized station series for the profile
func (p Profile) Series(opts profile.NormalizeOptions) (profile.Series, error) {
	s, err := profile.NormalizeWith(p.Raw(), opts)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return s, nil
}

// FromSeries builds a storable profile from a series
func FromSeries(name, date string, s profile.Series) Profile {
	p := Profile{Name: name, Date: date, Stations: make([]Station, len(s))}
	for i, st := range s {
		p.Stations[i] = Station{st.X, st.Z}
	}
	return p
}
