package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleRequest(t *testing.T) {
	st, err := SingleRequest(9.0, 0.008, RequestOptions{})

	require.NoError(t, err)
	vals := st.Values()
	assert.Equal(t, "0", vals.Get("isoc_val"))
	assert.Equal(t, "9", vals.Get("isoc_age"))
	assert.Equal(t, "0.008", vals.Get("isoc_zeta"))
}

func TestAgeGridRequest(t *testing.T) {
	st, err := AgeGridRequest(0.019, 6.6, 10.13, 0.05, RequestOptions{})

	require.NoError(t, err)
	vals := st.Values()
	assert.Equal(t, "1", vals.Get("isoc_val"))
	assert.Equal(t, "0.019", vals.Get("isoc_zeta"))
	assert.Equal(t, "6.6", vals.Get("isoc_lage0"))
	assert.Equal(t, "10.13", vals.Get("isoc_lage1"))
	assert.Equal(t, "0.05", vals.Get("isoc_dlage"))
}

func TestMetallicityGridRequest(t *testing.T) {
	st, err := MetallicityGridRequest(1e8, 0.0001, 0.03, 0.001, RequestOptions{})

	require.NoError(t, err)
	vals := st.Values()
	assert.Equal(t, "2", vals.Get("isoc_val"))
	assert.Equal(t, "1e+08", vals.Get("isoc_age0"))
	assert.Equal(t, "0.0001", vals.Get("isoc_z0"))
	assert.Equal(t, "0.03", vals.Get("isoc_z1"))
	assert.Equal(t, "0.001", vals.Get("isoc_dz"))
}

func TestRequestOptions_Model(t *testing.T) {
	st, err := SingleRequest(8.0, 0.019, RequestOptions{Model: "parsec11"})

	require.NoError(t, err)
	vals := st.Values()
	assert.Equal(t, "parsec_CAF09_v1.1", vals.Get("isoc_kind"))
	assert.Equal(t, "1", vals.Get("output_evstage"))
}

func TestRequestOptions_NonParsecModelDropsStages(t *testing.T) {
	st, err := SingleRequest(8.0, 0.019, RequestOptions{Model: "marigo08"})

	require.NoError(t, err)
	vals := st.Values()
	assert.Equal(t, "ma08", vals.Get("isoc_kind"))
	assert.Equal(t, "0", vals.Get("output_evstage"))
}

func TestRequestOptions_UnknownModel(t *testing.T) {
	_, err := SingleRequest(8.0, 0.019, RequestOptions{Model: "bogus"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown model")
}

func TestRequestOptions_PhotometricSystem(t *testing.T) {
	st, err := SingleRequest(8.0, 0.019, RequestOptions{Phot: "2mass"})

	require.NoError(t, err)
	assert.Equal(t, "tab_mag_odfnew/tab_mag_2mass.dat", st.Values().Get("photsys_file"))
}

func TestRequestOptions_ExtraOverrides(t *testing.T) {
	st, err := SingleRequest(8.0, 0.019, RequestOptions{
		Phot:  "2mass",
		Extra: map[string]any{"photsys": "sloan", "av": 0.5},
	})

	require.NoError(t, err)
	vals := st.Values()
	// Extra overrides win over the friendly knobs.
	assert.Equal(t, "tab_mag_odfnew/tab_mag_sloan.dat", vals.Get("photsys_file"))
	assert.Equal(t, "0.5", vals.Get("extinction_av"))
}
