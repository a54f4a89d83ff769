// Package config holds the analysis settings shared by the profcalc
// commands and loads them from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/planbiir/profcalc/internal/area"
	"github.com/planbiir/profcalc/internal/profile"
)

// Units a survey can be recorded in
const (
	UnitsFeet   = "ft"
	UnitsMeters = "m"
)

const maxFileSize = 1 * 1024 * 1024 // 1MB

// Analysis holds the parameters for a profile run
type Analysis struct {
	// Elevation bounds
	Contour  float64 `yaml:"contour" toml:"contour"`     // single contour elevation
	BandLow  float64 `yaml:"band_low" toml:"band_low"`   // lower band elevation
	BandHigh float64 `yaml:"band_high" toml:"band_high"` // upper band elevation

	// Horizontal bounds; both must be set to limit the area
	XOn    *float64 `yaml:"xon,omitempty" toml:"xon,omitempty"`
	XOff   *float64 `yaml:"xoff,omitempty" toml:"xoff,omitempty"`
	Policy string   `yaml:"policy" toml:"policy"` // truncate | extend | skip

	// Cut/fill
	Datum float64 `yaml:"datum" toml:"datum"` // shoreline and above/below split

	// Normalization; 0 keeps only exact duplicates
	Tolerance float64 `yaml:"tolerance" toml:"tolerance"`

	Workers int    `yaml:"workers" toml:"workers"`
	Units   string `yaml:"units" toml:"units"`
}

// DefaultAnalysis returns the settings used when no file is given
func DefaultAnalysis() Analysis {
	return Analysis{
		Contour:   0,  // NAVD88 zero
		BandLow:   -4, // typical closure toe
		BandHigh:  4,  // berm crest
		Policy:    "truncate",
		Datum:     0,
		Tolerance: 0,
		Workers:   runtime.NumCPU(),
		Units:     UnitsFeet,
	}
}

// Load reads an analysis file; the format is chosen by extension
func Load(path string) (*Analysis, error) {
	cleanPath := filepath.Clean(path)

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultAnalysis()
	switch ext := strings.ToLower(filepath.Ext(cleanPath)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("config file must have .yaml, .yml or .toml extension, got %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings for consistency
func (a Analysis) Validate() error {
	var errs []error

	if a.BandLow > a.BandHigh {
		errs = append(errs, fmt.Errorf("band_low %g above band_high %g: %w", a.BandLow, a.BandHigh, profile.ErrInvalidBound))
	}
	if (a.XOn == nil) != (a.XOff == nil) {
		errs = append(errs, errors.New("xon and xoff must be set together"))
	}
	if a.XOn != nil && a.XOff != nil && *a.XOff <= *a.XOn {
		errs = append(errs, fmt.Errorf("xoff %g must be greater than xon %g: %w", *a.XOff, *a.XOn, profile.ErrInvalidBound))
	}
	if _, err := profile.ParsePolicy(a.Policy); err != nil {
		errs = append(errs, err)
	}
	if a.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("tolerance must be >= 0, got %g", a.Tolerance))
	}
	if a.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be >= 1, got %d", a.Workers))
	}
	if a.Units != UnitsFeet && a.Units != UnitsMeters {
		errs = append(errs, fmt.Errorf("units must be %q or %q, got %q", UnitsFeet, UnitsMeters, a.Units))
	}

	return errors.Join(errs...)
}

// ContourBound returns the single-contour elevation bound
func (a Analysis) ContourBound() profile.ElevationBound {
	return profile.Contour(a.Contour)
}

// BandBound returns the band elevation bound
func (a Analysis) BandBound() profile.ElevationBound {
	return profile.Band(a.BandLow, a.BandHigh)
}

// HorizontalBound returns the xon/xoff limits, if both are set
func (a Analysis) HorizontalBound() (profile.HorizontalBound, bool, error) {
	if a.XOn == nil || a.XOff == nil {
		return profile.HorizontalBound{}, false, nil
	}
	policy, err := profile.ParsePolicy(a.Policy)
	if err != nil {
		return profile.HorizontalBound{}, false, err
	}
	return profile.HorizontalBound{X0: *a.XOn, X1: *a.XOff, Policy: policy}, true, nil
}

// NormalizeOptions returns the station cleaning settings
func (a Analysis) NormalizeOptions() profile.NormalizeOptions {
	return profile.NormalizeOptions{Tolerance: a.Tolerance}
}

// VolumePerLength converts a cross-section area into the volume per unit
// shoreline length reported for the configured units
func (a Analysis) VolumePerLength(sectionArea float64) (float64, string) {
	if a.Units == UnitsMeters {
		return sectionArea, "m³/m"
	}
	return area.CubicYardsPerFoot(sectionArea), "cy/ft"
}
