// Package isoctable parses the flat-text isochrone tables produced by the
// Padova CMD web interface. A raw table interleaves comment-prefixed header
// lines with tab-delimited numeric data and concatenates many isochrones
// into one file; Parse reconstructs it into independent typed isochrones,
// each tagged with its age, metallicity and column schema.
//
// Parsing runs in three passes over the same text: a structural prescan
// locating segment boundaries, a bulk load of every data row into one typed
// table, and a split that slices the bulk table back into per-isochrone
// segments. The split is cross-validated against an independent
// content-driven boundary detection; disagreement aborts the parse.
package isoctable

import (
	"bytes"

	"github.com/starfield-labs/isofetch/internal/core/domain"
	"github.com/starfield-labs/isofetch/internal/logger"
)

// Default parse tolerances and layout constants for CMD 2.x output.
const (
	// DefaultHeaderDepth is the number of comment lines immediately
	// preceding each data segment: one metadata line, one column header.
	DefaultHeaderDepth = 2

	// DefaultAgeTolerance is the log-age delta above which two adjacent
	// rows are considered to belong to different isochrones.
	DefaultAgeTolerance = 1e-4

	// DefaultZTolerance is the metallicity delta above which two adjacent
	// rows are considered to belong to different isochrones.
	DefaultZTolerance = 1e-6
)

// Options configures the parser for a particular CMD output layout.
// The zero value is not useful; start from DefaultOptions.
type Options struct {
	// Marker prefixes comment lines.
	Marker string

	// HeaderDepth is the fixed number of comment lines heading each
	// segment.
	HeaderDepth int

	// ColumnOffset is the number of leading placeholder fields before the
	// first schema column on a data line.
	ColumnOffset int

	// AgeColumn and ZColumn name the data columns scanned for
	// discontinuities.
	AgeColumn string
	ZColumn   string

	// AgeTolerance and ZTolerance are the discontinuity thresholds. Kept
	// configurable so a change in the service's grid spacing is a config
	// edit, not a code change.
	AgeTolerance float64
	ZTolerance   float64
}

// DefaultOptions returns the options matching current CMD 2.x output.
func DefaultOptions() Options {
	return Options{
		Marker:       "#",
		HeaderDepth:  DefaultHeaderDepth,
		ColumnOffset: 1,
		AgeColumn:    "log(age/yr)",
		ZColumn:      "Z",
		AgeTolerance: DefaultAgeTolerance,
		ZTolerance:   DefaultZTolerance,
	}
}

// Parse reads a complete raw table and returns the isochrone set it
// contains. The input must already be decompressed. No partial results are
// returned: any structural, schema, conversion or consistency failure
// aborts the whole parse.
func Parse(data []byte, opts Options) (*domain.IsochroneSet, error) {
	pre, err := PrescanTable(bytes.NewReader(data), opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("prescan: %d segments, %d global header lines, %d lines total",
		len(pre.Segments), len(pre.GlobalHeader), pre.TotalLines)

	schema, err := ResolveSchema(pre.Segments[0].HeaderLines[opts.HeaderDepth-1])
	if err != nil {
		return nil, err
	}

	table, err := LoadTable(bytes.NewReader(data), schema, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("bulk load: %d rows, %d columns", table.NumRows(), len(table.Cols))

	return SplitSegments(table, pre, opts)
}
