package services

import (
	"fmt"
	"strings"

	"github.com/starfield-labs/isofetch/internal/settings"
)

// Models maps friendly model names onto the isoc_kind form values.
var Models = map[string]string{
	"parsec11":   "parsec_CAF09_v1.1",
	"parsec10":   "parsec_CAF09_v1.0",
	"girardi10a": "gi10a",
	"girardi10b": "gi10b",
	"marigo08":   "ma08",
	"girardi02":  "gi2000",
}

// RequestOptions are the friendly knobs layered over the raw form
// settings. Zero values leave the schema defaults in place.
type RequestOptions struct {
	// Model is a friendly evolution-track name (see Models).
	Model string

	// Phot is the short photometric system name, e.g. "2mass".
	Phot string

	// Carbon, CDust and MDust select bolometric corrections and
	// circumstellar dust models by their form values.
	Carbon string
	CDust  string
	MDust  string

	// Extra holds raw settings overrides applied last, keyed by schema
	// key or alias.
	Extra map[string]any
}

// apply folds the friendly options into the settings.
func (o RequestOptions) apply(st *settings.Settings) error {
	if o.Model != "" {
		kind, ok := Models[o.Model]
		if !ok {
			return fmt.Errorf("unknown model %q", o.Model)
		}
		if err := st.Set("isoc_kind", kind); err != nil {
			return err
		}
		// Only the PARSEC tracks carry evolutionary stage labels.
		evstage := 0
		if strings.Contains(kind, "parsec") {
			evstage = 1
		}
		if err := st.Set("output_evstage", evstage); err != nil {
			return err
		}
	}
	if o.Phot != "" {
		if err := st.Set("photsys", o.Phot); err != nil {
			return err
		}
	}
	if o.Carbon != "" {
		if err := st.Set("carbon", o.Carbon); err != nil {
			return err
		}
	}
	if o.CDust != "" {
		if err := st.Set("cdust", o.CDust); err != nil {
			return err
		}
	}
	if o.MDust != "" {
		if err := st.Set("mdust", o.MDust); err != nil {
			return err
		}
	}
	return st.Update(o.Extra)
}

// SingleRequest builds settings for one isochrone at a log age and
// metallicity.
func SingleRequest(logAge, z float64, opts RequestOptions) (*settings.Settings, error) {
	st, err := settings.Load(settings.DefaultSchema)
	if err != nil {
		return nil, err
	}
	overrides := map[string]any{
		"isoc_val":  0,
		"isoc_age":  logAge,
		"isoc_zeta": z,
	}
	if err := st.Update(overrides); err != nil {
		return nil, err
	}
	return st, opts.apply(st)
}

// AgeGridRequest builds settings for a grid of constant-metallicity
// isochrones spanning [logAge0, logAge1] in steps of dLogAge.
func AgeGridRequest(z, logAge0, logAge1, dLogAge float64, opts RequestOptions) (*settings.Settings, error) {
	st, err := settings.Load(settings.DefaultSchema)
	if err != nil {
		return nil, err
	}
	overrides := map[string]any{
		"isoc_val":   1,
		"isoc_zeta":  z,
		"isoc_lage0": logAge0,
		"isoc_lage1": logAge1,
		"isoc_dlage": dLogAge,
	}
	if err := st.Update(overrides); err != nil {
		return nil, err
	}
	return st, opts.apply(st)
}

// MetallicityGridRequest builds settings for a grid of constant-age
// isochrones spanning [z0, z1] in steps of dz. Age is in years.
func MetallicityGridRequest(age, z0, z1, dz float64, opts RequestOptions) (*settings.Settings, error) {
	st, err := settings.Load(settings.DefaultSchema)
	if err != nil {
		return nil, err
	}
	overrides := map[string]any{
		"isoc_val":  2,
		"isoc_age0": age,
		"isoc_z0":   z0,
		"isoc_z1":   z1,
		"isoc_dz":   dz,
	}
	if err := st.Update(overrides); err != nil {
		return nil, err
	}
	return st, opts.apply(st)
}
