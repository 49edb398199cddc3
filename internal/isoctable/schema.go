package isoctable

import (
	"fmt"
	"strings"

	"github.com/starfield-labs/isofetch/internal/core/domain"
)

// Column-type exceptions. The CMD service emits floating point throughout,
// except the free-text evolutionary stage label and the pulsation mode.
var (
	stringColumns = map[string]bool{
		"stage": true,
	}
	intColumns = map[string]bool{
		"pmode": true,
	}
)

// ResolveSchema derives the column schema from the column-name header line
// (the last header line of a table's first segment). Names keep their
// declared order; duplicates pass through untouched.
func ResolveSchema(headerLine string) (domain.ColumnSchema, error) {
	names := strings.Fields(strings.ReplaceAll(headerLine, "\t", " "))
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: empty column header line", domain.ErrSchema)
	}

	schema := make(domain.ColumnSchema, len(names))
	for i, name := range names {
		kind := domain.KindFloat
		switch {
		case stringColumns[name]:
			kind = domain.KindString
		case intColumns[name]:
			kind = domain.KindInt
		}
		schema[i] = domain.ColumnSpec{Name: name, Kind: kind}
	}
	return schema, nil
}
