package isoctable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starfield-labs/isofetch/internal/core/domain"
)

func TestParse_FullTable(t *testing.T) {
	set, err := Parse([]byte(buildFixture(71, 3)), DefaultOptions())

	require.NoError(t, err)
	assert.Equal(t, 71, set.Len())
	assert.Len(t, set.Header, 9)

	first := set.At(0)
	z, err := first.Z()
	require.NoError(t, err)
	assert.InDelta(t, 0.019, z, 1e-12)
	assert.Equal(t, 3, first.NumRows())
	assert.Equal(t, []string{"J", "H", "Ks"}, first.FilterNames())
}

func TestParse_Idempotent(t *testing.T) {
	data := []byte(buildFixture(4, 3))

	a, err := Parse(data, DefaultOptions())
	require.NoError(t, err)
	b, err := Parse(data, DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, a.Len(), b.Len())
	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, a.At(i).Meta, b.At(i).Meta)
		assert.Equal(t, a.At(i).NumRows(), b.At(i).NumRows())
		assert.Equal(t, a.At(i).Table.Schema(), b.At(i).Table.Schema())
	}
}

func TestParse_AgesIncrease(t *testing.T) {
	set, err := Parse([]byte(buildFixture(5, 2)), DefaultOptions())
	require.NoError(t, err)

	prev := 0.0
	it := set.Iter()
	for iso, ok := it.Next(); ok; iso, ok = it.Next() {
		age, err := iso.Age()
		require.NoError(t, err)
		assert.Greater(t, age, prev)
		prev = age
	}
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(nil, DefaultOptions())

	assert.ErrorIs(t, err, domain.ErrMalformedTable)
}
