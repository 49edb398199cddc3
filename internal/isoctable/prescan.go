package isoctable

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/starfield-labs/isofetch/internal/core/domain"
)

// Segment is one isochrone's contiguous block of lines: the fixed-depth
// comment header plus the data run. Line indices are zero-based; End is
// exclusive. Segments are non-overlapping and ordered by appearance.
type Segment struct {
	Start       int
	End         int
	HeaderLines []string
}

// numRows returns the segment's data line count.
func (s Segment) numRows() int {
	return s.End - s.Start
}

// Prescan is the structural map of a raw table: where each isochrone's
// data begins and ends, its header lines, and the global header lines that
// belong to the file rather than to any one segment.
type Prescan struct {
	GlobalHeader []string
	Segments     []Segment
	TotalLines   int
}

// PrescanTable walks the stream once and locates segment boundaries.
//
// Comment lines accumulate in a pending buffer. The first data line after
// a comment run opens a segment: the last HeaderDepth buffered lines become
// the segment's header, and whatever remains in the buffer drains into the
// global header in original order. The segment stays open until the next
// comment run begins.
//
// The stream is rewound to the start on success so downstream passes can
// re-read from the beginning.
func PrescanTable(r io.ReadSeeker, opts Options) (*Prescan, error) {
	pre := &Prescan{}
	var pending []string
	inRun := false
	open := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	i := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, opts.Marker) {
			if !inRun {
				inRun = true
				if open {
					pre.Segments[len(pre.Segments)-1].End = i
					open = false
				}
			}
			pending = append(pending, strings.TrimSpace(strings.TrimLeft(line, opts.Marker)))
		} else if inRun {
			if len(pending) < opts.HeaderDepth {
				return nil, fmt.Errorf(
					"%w: segment at line %d has %d header lines, need %d",
					domain.ErrMalformedTable, i, len(pending), opts.HeaderDepth)
			}
			cut := len(pending) - opts.HeaderDepth
			seg := Segment{
				Start:       i,
				HeaderLines: append([]string(nil), pending[cut:]...),
			}
			pre.GlobalHeader = append(pre.GlobalHeader, pending[:cut]...)
			pre.Segments = append(pre.Segments, seg)
			pending = pending[:0]
			inRun = false
			open = true
		}
		i++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	pre.TotalLines = i

	if len(pre.Segments) == 0 {
		return nil, fmt.Errorf("%w: no data segments found", domain.ErrMalformedTable)
	}
	if open {
		pre.Segments[len(pre.Segments)-1].End = i
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return pre, nil
}
