package isoctable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starfield-labs/isofetch/internal/core/domain"
)

func TestResolveSchema_Types(t *testing.T) {
	schema, err := ResolveSchema("Z\tlog(age/yr)\tM_ini\tpmode\tstage")

	require.NoError(t, err)
	require.Len(t, schema, 5)
	assert.Equal(t, []string{"Z", "log(age/yr)", "M_ini", "pmode", "stage"}, schema.Names())
	assert.Equal(t, domain.KindFloat, schema[0].Kind)
	assert.Equal(t, domain.KindFloat, schema[2].Kind)
	assert.Equal(t, domain.KindInt, schema[3].Kind)
	assert.Equal(t, domain.KindString, schema[4].Kind)
}

func TestResolveSchema_MixedWhitespace(t *testing.T) {
	schema, err := ResolveSchema("  M_ini \t logTe\t\tJ  ")

	require.NoError(t, err)
	assert.Equal(t, []string{"M_ini", "logTe", "J"}, schema.Names())
}

func TestResolveSchema_DuplicatesPassThrough(t *testing.T) {
	schema, err := ResolveSchema("J\tJ\tKs")

	require.NoError(t, err)
	assert.Equal(t, []string{"J", "J", "Ks"}, schema.Names())
}

func TestResolveSchema_Empty(t *testing.T) {
	_, err := ResolveSchema("   \t  ")

	assert.ErrorIs(t, err, domain.ErrSchema)
}
