package domain

import "fmt"

// ColumnKind is the storage type of a table column.
type ColumnKind int

// Column storage types. Everything the CMD service emits is floating point
// except a small set of declared exceptions.
const (
	KindFloat ColumnKind = iota
	KindInt
	KindString
)

// String returns the string representation.
func (k ColumnKind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// ColumnSpec is one (name, kind) pair of a column schema.
type ColumnSpec struct {
	Name string
	Kind ColumnKind
}

// ColumnSchema is the ordered column layout of a table.
// Duplicate names are passed through as declared; resolution of
// duplicates is the caller's responsibility.
type ColumnSchema []ColumnSpec

// Names returns the column names in schema order.
func (s ColumnSchema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the first column with the given name,
// or -1 if absent.
func (s ColumnSchema) Index(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column holds one typed column of a table. Exactly one of the three
// slices is populated, matching Kind; the others are nil.
type Column struct {
	Name    string
	Kind    ColumnKind
	Floats  []float64
	Ints    []int64
	Strings []string
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	switch c.Kind {
	case KindFloat:
		return len(c.Floats)
	case KindInt:
		return len(c.Ints)
	default:
		return len(c.Strings)
	}
}

// Slice returns a copy of the column restricted to rows [from, to).
func (c *Column) Slice(from, to int) Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	switch c.Kind {
	case KindFloat:
		out.Floats = append([]float64(nil), c.Floats[from:to]...)
	case KindInt:
		out.Ints = append([]int64(nil), c.Ints[from:to]...)
	default:
		out.Strings = append([]string(nil), c.Strings[from:to]...)
	}
	return out
}

// Table is a column-major typed table. All columns have equal length.
type Table struct {
	Cols []Column
}

// NewTable allocates an empty table matching the schema, with capacity
// for n rows per column.
func NewTable(schema ColumnSchema, n int) *Table {
	t := &Table{Cols: make([]Column, len(schema))}
	for i, spec := range schema {
		col := Column{Name: spec.Name, Kind: spec.Kind}
		switch spec.Kind {
		case KindFloat:
			col.Floats = make([]float64, 0, n)
		case KindInt:
			col.Ints = make([]int64, 0, n)
		default:
			col.Strings = make([]string, 0, n)
		}
		t.Cols[i] = col
	}
	return t
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	if len(t.Cols) == 0 {
		return 0
	}
	return t.Cols[0].Len()
}

// Schema returns the table's column layout.
func (t *Table) Schema() ColumnSchema {
	s := make(ColumnSchema, len(t.Cols))
	for i, c := range t.Cols {
		s[i] = ColumnSpec{Name: c.Name, Kind: c.Kind}
	}
	return s
}

// Col returns the first column with the given name, or nil.
func (t *Table) Col(name string) *Column {
	for i := range t.Cols {
		if t.Cols[i].Name == name {
			return &t.Cols[i]
		}
	}
	return nil
}

// FloatCol returns the float data of the named column.
// Returns ErrSchema if the column is absent or not floating point.
func (t *Table) FloatCol(name string) ([]float64, error) {
	c := t.Col(name)
	if c == nil {
		return nil, fmt.Errorf("%w: no column %q", ErrSchema, name)
	}
	if c.Kind != KindFloat {
		return nil, fmt.Errorf("%w: column %q is %s, not float", ErrSchema, name, c.Kind)
	}
	return c.Floats, nil
}

// Slice returns a copy of the table restricted to rows [from, to).
func (t *Table) Slice(from, to int) *Table {
	out := &Table{Cols: make([]Column, len(t.Cols))}
	for i := range t.Cols {
		out.Cols[i] = t.Cols[i].Slice(from, to)
	}
	return out
}

// DropCols returns a copy of the table without the named columns.
func (t *Table) DropCols(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	out := &Table{}
	for _, c := range t.Cols {
		if !drop[c.Name] {
			out.Cols = append(out.Cols, c.Slice(0, c.Len()))
		}
	}
	return out
}
