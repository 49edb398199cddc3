package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starfield-labs/isofetch/internal/core/domain"
)

func TestCoerce(t *testing.T) {
	assert.Equal(t, int64(1), coerce("1"))
	assert.Equal(t, 0.5, coerce("0.5"))
	assert.Equal(t, 1e8, coerce("1e8"))
	assert.Equal(t, "sloan", coerce("sloan"))
}

func TestSummarise(t *testing.T) {
	set := &domain.IsochroneSet{Isochrones: []*domain.Isochrone{
		{
			Table: &domain.Table{Cols: []domain.Column{
				{Name: "M_ini", Kind: domain.KindFloat, Floats: []float64{0.5, 0.6}},
				{Name: "J", Kind: domain.KindFloat, Floats: []float64{4.1, 3.9}},
			}},
			Meta: domain.Metadata{"Z": 0.019, "age": 1e8},
		},
	}}

	summaries, err := summarise(set)

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 0.019, summaries[0].Z)
	assert.Equal(t, 1e8, summaries[0].Age)
	assert.Equal(t, 2, summaries[0].Rows)
	assert.Equal(t, []string{"J"}, summaries[0].Filters)
}

func TestSummarise_MissingMetadata(t *testing.T) {
	set := &domain.IsochroneSet{Isochrones: []*domain.Isochrone{
		{Table: &domain.Table{}, Meta: domain.Metadata{}},
	}}

	_, err := summarise(set)

	assert.ErrorIs(t, err, domain.ErrUnknownKey)
}
