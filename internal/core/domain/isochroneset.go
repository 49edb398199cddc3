package domain

import (
	"fmt"
	"math"
)

// MassColumn is the initial stellar mass column, the join key shared by
// every CMD output table.
const MassColumn = "M_ini"

// IsochroneSet is an ordered collection of isochrones parsed from one raw
// table, plus the table's global header. Construction happens in one pass;
// a set is not mutated afterwards. It is not safe for concurrent use.
type IsochroneSet struct {
	Isochrones []*Isochrone
	Header     []string
}

// Len returns the number of isochrones in the set.
func (s *IsochroneSet) Len() int {
	return len(s.Isochrones)
}

// At returns the i-th isochrone.
func (s *IsochroneSet) At(i int) *Isochrone {
	return s.Isochrones[i]
}

// Iter returns a fresh forward iterator over the set. Each call starts a
// new walk, so two callers can iterate independently.
func (s *IsochroneSet) Iter() *Iterator {
	return &Iterator{set: s}
}

// Iterator is a finite forward cursor over an IsochroneSet.
type Iterator struct {
	set *IsochroneSet
	pos int
}

// Next returns the next isochrone, or false when the walk is done.
func (it *Iterator) Next() (*Isochrone, bool) {
	if it.pos >= it.set.Len() {
		return nil, false
	}
	iso := it.set.At(it.pos)
	it.pos++
	return iso, true
}

// JoinOptions selects which photometric bands survive a join.
type JoinOptions struct {
	// LeftBands restricts the left set's band columns. Empty keeps all.
	LeftBands []string

	// RightBands restricts the right set's band columns. Empty keeps all.
	RightBands []string
}

// Join combines two sets column-wise and returns a new set; neither input
// is modified. Isochrones are paired by position, and each pair is joined
// left-outer on the initial mass column: every left row survives, and left
// rows with no right match receive null band values. Right band columns win
// name collisions with left columns.
//
// Pairing by position assumes the two sets come from requests over the same
// age/metallicity grid; ages are not re-verified.
func Join(left, right *IsochroneSet, opts JoinOptions) (*IsochroneSet, error) {
	if left.Len() != right.Len() {
		return nil, fmt.Errorf("%w: left has %d isochrones, right has %d",
			ErrShape, left.Len(), right.Len())
	}

	out := &IsochroneSet{
		Isochrones: make([]*Isochrone, left.Len()),
		Header:     append([]string(nil), left.Header...),
	}
	for i := 0; i < left.Len(); i++ {
		iso, err := joinIsochrones(left.At(i), right.At(i), opts)
		if err != nil {
			return nil, fmt.Errorf("isochrone %d: %w", i, err)
		}
		out.Isochrones[i] = iso
	}
	return out, nil
}

func joinIsochrones(left, right *Isochrone, opts JoinOptions) (*Isochrone, error) {
	leftKey, err := left.Table.FloatCol(MassColumn)
	if err != nil {
		return nil, err
	}
	rightKey, err := right.Table.FloatCol(MassColumn)
	if err != nil {
		return nil, err
	}

	rightBands := selectBands(right.FilterNames(), opts.RightBands)
	leftTable := trimLeft(left, rightBands, opts.LeftBands)

	// Row lookup from mass to right row index. Masses repeat only across
	// isochrones, never within one, so a plain map suffices.
	rowByMass := make(map[float64]int, len(rightKey))
	for i, m := range rightKey {
		rowByMass[m] = i
	}

	joined := &Table{Cols: append([]Column(nil), leftTable.Cols...)}
	for _, name := range rightBands {
		src := right.Table.Col(name)
		if src == nil || src.Kind != KindFloat {
			return nil, fmt.Errorf("%w: right band %q", ErrSchema, name)
		}
		col := Column{
			Name:   name,
			Kind:   KindFloat,
			Floats: make([]float64, len(leftKey)),
		}
		for i, m := range leftKey {
			if j, ok := rowByMass[m]; ok {
				col.Floats[i] = src.Floats[j]
			} else {
				col.Floats[i] = math.NaN()
			}
		}
		joined.Cols = append(joined.Cols, col)
	}

	meta := make(Metadata, len(left.Meta))
	for k, v := range left.Meta {
		meta[k] = v
	}
	return &Isochrone{
		Table:  joined,
		Meta:   meta,
		Header: left.Header,
	}, nil
}

// trimLeft returns a copy of the left table with its bands restricted to
// leftBands (when given) and any column shadowed by a kept right band
// removed. The key column is never dropped.
func trimLeft(left *Isochrone, rightBands, leftBands []string) *Table {
	var drop []string

	if len(leftBands) > 0 {
		keep := make(map[string]bool, len(leftBands))
		for _, b := range leftBands {
			keep[b] = true
		}
		for _, name := range left.FilterNames() {
			if !keep[name] {
				drop = append(drop, name)
			}
		}
	}
	for _, name := range rightBands {
		if name != MassColumn && left.Table.Col(name) != nil {
			drop = append(drop, name)
		}
	}

	return left.Table.DropCols(drop...)
}

func selectBands(available, requested []string) []string {
	if len(requested) == 0 {
		return available
	}
	keep := make(map[string]bool, len(requested))
	for _, b := range requested {
		keep[b] = true
	}
	var out []string
	for _, name := range available {
		if keep[name] {
			out = append(out, name)
		}
	}
	return out
}
