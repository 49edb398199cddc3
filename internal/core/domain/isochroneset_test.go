package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoBandSets builds matched left/right sets with one isochrone each:
// left carries J, H, Ks and right carries U, B, V over the same masses.
func twoBandSets() (*IsochroneSet, *IsochroneSet) {
	masses := []float64{0.5, 0.6, 0.7}
	left := &IsochroneSet{Isochrones: []*Isochrone{
		testIsochrone(Metadata{"Z": 0.019, "age": 1e9},
			floatCol("M_ini", masses...),
			floatCol("logTe", 3.65, 3.66, 3.67),
			floatCol("J", 9.0, 8.9, 8.8),
			floatCol("H", 8.5, 8.4, 8.3),
			floatCol("Ks", 8.2, 8.1, 8.0)),
	}}
	right := &IsochroneSet{Isochrones: []*Isochrone{
		testIsochrone(Metadata{"Z": 0.019, "age": 1e9},
			floatCol("M_ini", masses...),
			floatCol("logTe", 3.65, 3.66, 3.67),
			floatCol("U", 11.0, 10.9, 10.8),
			floatCol("B", 10.5, 10.4, 10.3),
			floatCol("V", 10.2, 10.1, 10.0)),
	}}
	return left, right
}

func TestIterator_Fresh(t *testing.T) {
	set, _ := twoBandSets()

	// Two iterators walk independently; exhausting one does not affect
	// the other or the set.
	a := set.Iter()
	b := set.Iter()

	_, ok := a.Next()
	assert.True(t, ok)
	_, ok = a.Next()
	assert.False(t, ok)

	_, ok = b.Next()
	assert.True(t, ok)

	_, ok = set.Iter().Next()
	assert.True(t, ok)
}

func TestJoin_Defaults(t *testing.T) {
	left, right := twoBandSets()

	out, err := Join(left, right, JoinOptions{})

	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	iso := out.At(0)
	assert.Equal(t, []string{"J", "H", "Ks", "U", "B", "V"}, iso.FilterNames())
	assert.Equal(t, 3, iso.NumRows())

	masses, err := iso.Table.FloatCol(MassColumn)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.6, 0.7}, masses)

	v, err := iso.Table.FloatCol("V")
	require.NoError(t, err)
	assert.Equal(t, []float64{10.2, 10.1, 10.0}, v)
}

func TestJoin_InputsUntouched(t *testing.T) {
	left, right := twoBandSets()

	_, err := Join(left, right, JoinOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{"J", "H", "Ks"}, left.At(0).FilterNames())
	assert.Equal(t, []string{"U", "B", "V"}, right.At(0).FilterNames())
}

func TestJoin_BandSelection(t *testing.T) {
	left, right := twoBandSets()

	out, err := Join(left, right, JoinOptions{
		LeftBands:  []string{"J"},
		RightBands: []string{"V"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"J", "V"}, out.At(0).FilterNames())
}

func TestJoin_RightWinsCollision(t *testing.T) {
	left, right := twoBandSets()
	// Give the left set a V column that must be shadowed by the right's.
	left.At(0).Table.Cols = append(left.At(0).Table.Cols,
		floatCol("V", -1, -1, -1))

	out, err := Join(left, right, JoinOptions{})

	require.NoError(t, err)
	v, err := out.At(0).Table.FloatCol("V")
	require.NoError(t, err)
	assert.Equal(t, []float64{10.2, 10.1, 10.0}, v)
}

func TestJoin_LeftOuterNulls(t *testing.T) {
	left, right := twoBandSets()
	// Drop the right side's last row; the unmatched left row gets NaN.
	for i := range right.At(0).Table.Cols {
		c := &right.At(0).Table.Cols[i]
		c.Floats = c.Floats[:2]
	}

	out, err := Join(left, right, JoinOptions{})

	require.NoError(t, err)
	iso := out.At(0)
	assert.Equal(t, 3, iso.NumRows())
	u, err := iso.Table.FloatCol("U")
	require.NoError(t, err)
	assert.Equal(t, 11.0, u[0])
	assert.True(t, math.IsNaN(u[2]))
}

func TestJoin_LengthMismatch(t *testing.T) {
	left, right := twoBandSets()
	right.Isochrones = append(right.Isochrones, right.At(0))

	_, err := Join(left, right, JoinOptions{})

	assert.ErrorIs(t, err, ErrShape)
}

func TestJoin_MissingKeyColumn(t *testing.T) {
	left, right := twoBandSets()
	right.At(0).Table = right.At(0).Table.DropCols(MassColumn)

	_, err := Join(left, right, JoinOptions{})

	assert.ErrorIs(t, err, ErrSchema)
}
