// Package export writes parsed isochrones as fixed-width text files for
// downstream stellar population tools.
package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/starfield-labs/isofetch/internal/core/domain"
	"github.com/starfield-labs/isofetch/internal/logger"
)

// WriteSet writes one file per isochrone into dir, creating dir if absent
// and overwriting existing files. Files are named z{ZCODE}_{AGECODE} with
// no extension. bands selects the magnitude columns; empty keeps all.
// Returns the written paths in set order.
func WriteSet(dir string, set *domain.IsochroneSet, bands []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, 0, set.Len())
	it := set.Iter()
	for iso, ok := it.Next(); ok; iso, ok = it.Next() {
		path, err := WriteIsochrone(dir, iso, bands)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteIsochrone writes one isochrone into dir and returns the file path.
// Columns are the initial mass followed by the selected bands: mass with
// six decimals, magnitudes with two.
func WriteIsochrone(dir string, iso *domain.Isochrone, bands []string) (string, error) {
	zcode, err := iso.ZCode()
	if err != nil {
		return "", err
	}
	agecode, err := iso.AgeCode()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("z%s_%s", zcode, agecode))

	if len(bands) == 0 {
		bands = iso.FilterNames()
	}

	masses, err := iso.Table.FloatCol(domain.MassColumn)
	if err != nil {
		return "", err
	}
	mags := make([][]float64, len(bands))
	for i, band := range bands {
		col, err := iso.Table.FloatCol(band)
		if err != nil {
			return "", err
		}
		mags[i] = col
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for row := range masses {
		fmt.Fprintf(w, "%12.6f", masses[row])
		for _, col := range mags {
			fmt.Fprintf(w, " %8.2f", col[row])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	logger.Debug("wrote %s (%d rows, %d bands)", path, len(masses), len(bands))
	return path, nil
}
