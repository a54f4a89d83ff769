// Package survey reads and writes sets of beach-profile surveys stored as
// JSON and selects profiles from them by header.
package survey

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrNotFound is returned by Find when no profile matches the selector
	ErrNotFound = errors.New("profile not found")

	// ErrNoDate is returned when a profile carries no survey date
	ErrNoDate = errors.New("profile has no date")
)

// Parse reads and parses a survey file
func Parse(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader parses a survey document from an io.Reader
func ParseReader(r io.Reader) (*Document, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse survey: %w", err)
	}

	if doc.Creator == "" {
		doc.Creator = "profcalc"
	}

	// Unnamed profiles get a positional name so they can still be selected
	for i := range doc.Profiles {
		if strings.TrimSpace(doc.Profiles[i].Name) == "" {
			doc.Profiles[i].Name = fmt.Sprintf("profile-%d", i+1)
		}
	}

	return &doc, nil
}

// Write saves the document to a file
func (d *Document) Write(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return d.WriteToWriter(file)
}

// WriteToWriter writes the document as indented JSON
func (d *Document) WriteToWriter(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("failed to encode survey: %w", err)
	}

	return nil
}

// Find selects one profile by header. The selector is compared without
// regard to case, first against each full header and name, then as a
// prefix of the header. The first match in document order wins.
func (d *Document) Find(selector string) (Profile, error) {
	want := strings.ToLower(strings.TrimSpace(selector))
	if want == "" {
		return Profile{}, fmt.Errorf("empty selector: %w", ErrNotFound)
	}

	for _, p := range d.Profiles {
		if strings.ToLower(p.Header()) == want || strings.ToLower(p.Name) == want {
			return p, nil
		}
	}
	for _, p := range d.Profiles {
		if strings.HasPrefix(strings.ToLower(p.Header()), want) {
			return p, nil
		}
	}

	return Profile{}, fmt.Errorf("%q: %w", selector, ErrNotFound)
}

// Headers lists the header of every profile in document order
func (d *Document) Headers() []string {
	out := make([]string, len(d.Profiles))
	for i, p := range d.Profiles {
		out[i] = p.Header()
	}
	return out
}

// Stats returns basic counts for the document
func (d *Document) Stats() (profileCount, stationCount int) {
	profileCount = len(d.Profiles)
	for _, p := range d.Profiles {
		stationCount += len(p.Stations)
	}
	return
}
