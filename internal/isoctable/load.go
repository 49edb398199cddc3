package isoctable

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/starfield-labs/isofetch/internal/core/domain"
)

// LoadTable reads every data row across all segments into one column-major
// typed table matching the schema. Comment and blank lines are skipped.
//
// One format quirk is tolerated: when the service omits the optional
// trailing label column, a row arrives with exactly one field fewer than
// the schema declares. Such rows are padded with an empty trailing field
// instead of failing. Any other arity or conversion failure aborts the
// load with position context.
func LoadTable(r io.Reader, schema domain.ColumnSchema, opts Options) (*domain.Table, error) {
	table := domain.NewTable(schema, 1024)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for i := 0; scanner.Scan(); i++ {
		line := scanner.Text()
		if strings.HasPrefix(line, opts.Marker) || strings.TrimSpace(line) == "" {
			continue
		}

		fields := splitRow(line, opts.ColumnOffset)
		if len(fields) == len(schema)-1 {
			fields = append(fields, "")
		}
		if len(fields) != len(schema) {
			return nil, &domain.ParseError{
				Line:  i,
				Value: line,
				Err: fmt.Errorf("%w: %d fields, schema has %d columns",
					domain.ErrSchema, len(fields), len(schema)),
			}
		}

		for c, field := range fields {
			if err := appendField(&table.Cols[c], field); err != nil {
				return nil, &domain.ParseError{
					Line:   i,
					Column: schema[c].Name,
					Value:  field,
					Err:    err,
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// splitRow splits a data line into fields. Tab-delimited lines are split
// strictly on tabs so the blank leading placeholder columns survive and can
// be dropped by offset, and so labels containing spaces stay one field.
// Space-delimited lines have no surviving placeholder; a plain whitespace
// split covers them.
func splitRow(line string, offset int) []string {
	if !strings.Contains(line, "\t") {
		return strings.Fields(line)
	}
	fields := strings.Split(line, "\t")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	for offset > 0 && len(fields) > 0 && fields[0] == "" {
		fields = fields[1:]
		offset--
	}
	return fields
}

func appendField(col *domain.Column, field string) error {
	switch col.Kind {
	case domain.KindFloat:
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return err
		}
		col.Floats = append(col.Floats, v)
	case domain.KindInt:
		v, err := parseIntField(field)
		if err != nil {
			return err
		}
		col.Ints = append(col.Ints, v)
	default:
		col.Strings = append(col.Strings, field)
	}
	return nil
}

// parseIntField accepts plain integers plus the float spelling the service
// sometimes uses for integral values ("1.0"). Non-integral floats fail.
func parseIntField(field string) (int64, error) {
	if v, err := strconv.ParseInt(field, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, err
	}
	v := int64(f)
	if float64(v) != f {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	return v, nil
}
