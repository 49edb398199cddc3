package domain

import (
	"fmt"
	"math"
)

// Metadata holds the key/value pairs parsed from a segment's first header
// line. The CMD service always emits at least Z and age.
type Metadata map[string]float64

// Z returns the metallicity, accepting either key case the service has used.
func (m Metadata) Z() (float64, error) {
	if v, ok := m["Z"]; ok {
		return v, nil
	}
	if v, ok := m["z"]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: Z", ErrUnknownKey)
}

// Age returns the isochrone age in years.
func (m Metadata) Age() (float64, error) {
	if v, ok := m["age"]; ok {
		return v, nil
	}
	if v, ok := m["Age"]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: age", ErrUnknownKey)
}

// nonMagnitudeColumns are schema columns that are stellar parameters rather
// than photometric bands. FilterNames excludes these; anything else in the
// schema is assumed to be a magnitude column for some filter.
var nonMagnitudeColumns = map[string]bool{
	"Z":           true,
	"log(age/yr)": true,
	"logageyr":    true,
	"age/yr":      true,
	"M_ini":       true,
	"M_act":       true,
	"logL/Lo":     true,
	"logTe":       true,
	"logG":        true,
	"mbol":        true,
	"C/O":         true,
	"M_hec":       true,
	"period":      true,
	"pmode":       true,
	"logMdot":     true,
	"int_IMF":     true,
	"stage":       true,
}

// Isochrone is one parsed segment: a typed table of stellar models for a
// single age and metallicity, plus its header metadata. It does not inherit
// table behaviour; it composes a Table with accessors.
type Isochrone struct {
	Table *Table
	Meta  Metadata

	// Header is the global header shared by every isochrone in a set,
	// echoing the service's provenance and configuration comments.
	Header []string
}

// Z returns the metallicity.
func (iso *Isochrone) Z() (float64, error) {
	return iso.Meta.Z()
}

// Age returns the age in years.
func (iso *Isochrone) Age() (float64, error) {
	return iso.Meta.Age()
}

// ZCode returns the 4-digit fixed-point encoding of the metallicity used in
// export filenames, e.g. 0.012 -> "0120".
func (iso *Isochrone) ZCode() (string, error) {
	z, err := iso.Z()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.4f", z)[2:], nil
}

// AgeCode returns the log-age encoding used in export filenames,
// e.g. 3981000.0 -> "06.60".
func (iso *Isochrone) AgeCode() (string, error) {
	age, err := iso.Age()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%05.2f", math.Log10(age)), nil
}

// FilterNames returns the photometric band columns, in schema order.
func (iso *Isochrone) FilterNames() []string {
	var names []string
	for _, c := range iso.Table.Cols {
		if !nonMagnitudeColumns[c.Name] {
			names = append(names, c.Name)
		}
	}
	return names
}

// NumRows returns the number of stellar models on the isochrone.
func (iso *Isochrone) NumRows() int {
	return iso.Table.NumRows()
}
