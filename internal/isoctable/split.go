package isoctable

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/starfield-labs/isofetch/internal/core/domain"
)

// SplitSegments partitions the bulk-loaded table into per-isochrone tables
// using the prescanned boundaries, and cross-validates the partition
// against an independent content-driven boundary detection on the age and
// metallicity columns. The structural boundaries are authoritative; the
// content scan exists to catch both parser bugs and ambiguous upstream
// files, and a count mismatch fails the whole parse.
func SplitSegments(table *domain.Table, pre *Prescan, opts Options) (*domain.IsochroneSet, error) {
	total := 0
	for _, seg := range pre.Segments {
		total += seg.numRows()
	}
	if total != table.NumRows() {
		return nil, fmt.Errorf("%w: prescan covers %d data rows, bulk load found %d",
			domain.ErrInconsistent, total, table.NumRows())
	}

	content, err := countContentSegments(table, opts)
	if err != nil {
		return nil, err
	}
	if content != len(pre.Segments) {
		return nil, fmt.Errorf("%w: prescan found %d segments, discontinuity scan found %d",
			domain.ErrInconsistent, len(pre.Segments), content)
	}

	set := &domain.IsochroneSet{
		Isochrones: make([]*domain.Isochrone, len(pre.Segments)),
		Header:     pre.GlobalHeader,
	}
	row := 0
	for i, seg := range pre.Segments {
		meta, err := ParseMetadata(seg.HeaderLines[0])
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		set.Isochrones[i] = &domain.Isochrone{
			Table:  table.Slice(row, row+seg.numRows()),
			Meta:   meta,
			Header: pre.GlobalHeader,
		}
		row += seg.numRows()
	}
	return set, nil
}

// countContentSegments counts segments implied by discontinuities in the
// age and metallicity columns: a boundary sits wherever either successive
// difference exceeds its tolerance.
func countContentSegments(table *domain.Table, opts Options) (int, error) {
	ages, err := table.FloatCol(opts.AgeColumn)
	if err != nil {
		return 0, err
	}
	zs, err := table.FloatCol(opts.ZColumn)
	if err != nil {
		return 0, err
	}
	if len(ages) == 0 {
		return 0, nil
	}

	n := len(ages) - 1
	dAge := make([]float64, n)
	dZ := make([]float64, n)
	floats.SubTo(dAge, ages[1:], ages[:n])
	floats.SubTo(dZ, zs[1:], zs[:n])

	count := 1
	for i := 0; i < n; i++ {
		if math.Abs(dAge[i]) > opts.AgeTolerance || math.Abs(dZ[i]) > opts.ZTolerance {
			count++
		}
	}
	return count, nil
}

// ParseMetadata extracts key/value pairs from a segment's first header
// line. The line mixes boilerplate tokens with assignments, e.g.
//
//	Isochrone  Z = 0.012  age = 3.981e9 yr
//
// The scan anchors on "=" tokens (or embedded key=value tokens), taking
// the surrounding tokens as key and value; everything else is ignored.
func ParseMetadata(line string) (domain.Metadata, error) {
	tokens := strings.Fields(line)
	meta := make(domain.Metadata)

	for i, tok := range tokens {
		switch {
		case tok == "=":
			if i == 0 || i+1 >= len(tokens) {
				continue
			}
			if v, err := strconv.ParseFloat(tokens[i+1], 64); err == nil {
				meta[tokens[i-1]] = v
			}
		case strings.Count(tok, "=") == 1 && !strings.HasPrefix(tok, "=") && !strings.HasSuffix(tok, "="):
			parts := strings.SplitN(tok, "=", 2)
			if v, err := strconv.ParseFloat(parts[1], 64); err == nil {
				meta[parts[0]] = v
			}
		}
	}

	if len(meta) == 0 {
		return nil, fmt.Errorf("%w: no key=value tokens in header line %q",
			domain.ErrMalformedTable, line)
	}
	return meta, nil
}
