package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/starfield-labs/isofetch/internal/core/domain"
	"github.com/starfield-labs/isofetch/internal/core/services"
	"github.com/starfield-labs/isofetch/internal/export"
	"github.com/starfield-labs/isofetch/internal/settings"
)

var (
	fetchMode   string
	fetchModel  string
	fetchPhot   string
	fetchCarbon string
	fetchCDust  string
	fetchMDust  string
	fetchSet    []string

	fetchLogAge float64
	fetchZ      float64

	fetchLogAge0 float64
	fetchLogAge1 float64
	fetchDLogAge float64

	fetchAge0 float64
	fetchZ0   float64
	fetchZ1   float64
	fetchDZ   float64

	fetchMergePhot  string
	fetchLeftBands  []string
	fetchRightBands []string

	fetchJSON      bool
	fetchExportDir string
	fetchBands     []string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch an isochrone table from the CMD service",
	Long: `Submits a request to the CMD web interface (or reads the cached result)
and parses the returned table into individual isochrones.

Modes:
  single   - one isochrone at --logage and --z
  age-grid - constant metallicity --z, log ages [--lage0, --lage1] step --dlage
  z-grid   - constant age --age0 (years), metallicities [--z0, --z1] step --dz`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchMode, "mode", "single", "request mode: single, age-grid or z-grid")
	fetchCmd.Flags().StringVar(&fetchModel, "model", "", "evolution track set (parsec11, parsec10, girardi10a, girardi10b, marigo08, girardi02)")
	fetchCmd.Flags().StringVar(&fetchPhot, "phot", "", "photometric system, e.g. 2mass, ubvrijhk")
	fetchCmd.Flags().StringVar(&fetchCarbon, "carbon", "", "carbon star bolometric corrections")
	fetchCmd.Flags().StringVar(&fetchCDust, "cdust", "", "circumstellar dust for C-type AGB stars")
	fetchCmd.Flags().StringVar(&fetchMDust, "mdust", "", "circumstellar dust for M-type AGB stars")
	fetchCmd.Flags().StringArrayVar(&fetchSet, "set", nil, "raw form override key=value (repeatable)")

	fetchCmd.Flags().Float64Var(&fetchLogAge, "logage", 6.6, "log10 age for single mode")
	fetchCmd.Flags().Float64Var(&fetchZ, "z", 0.019, "metallicity for single and age-grid modes")

	fetchCmd.Flags().Float64Var(&fetchLogAge0, "lage0", 6.6, "initial log age for age-grid mode")
	fetchCmd.Flags().Float64Var(&fetchLogAge1, "lage1", 10.13, "final log age for age-grid mode")
	fetchCmd.Flags().Float64Var(&fetchDLogAge, "dlage", 0.05, "log age step for age-grid mode")

	fetchCmd.Flags().Float64Var(&fetchAge0, "age0", 1e9, "age in years for z-grid mode")
	fetchCmd.Flags().Float64Var(&fetchZ0, "z0", 0.0001, "initial metallicity for z-grid mode")
	fetchCmd.Flags().Float64Var(&fetchZ1, "z1", 0.03, "final metallicity for z-grid mode")
	fetchCmd.Flags().Float64Var(&fetchDZ, "dz", 0.0001, "metallicity step for z-grid mode")

	fetchCmd.Flags().StringVar(&fetchMergePhot, "merge-phot", "", "second photometric system to join column-wise")
	fetchCmd.Flags().StringSliceVar(&fetchLeftBands, "left-bands", nil, "bands kept from the primary system in a merge")
	fetchCmd.Flags().StringSliceVar(&fetchRightBands, "right-bands", nil, "bands kept from the merged system")

	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "output the summary as JSON")
	fetchCmd.Flags().StringVar(&fetchExportDir, "export", "", "write one fixed-width file per isochrone into this directory")
	fetchCmd.Flags().StringSliceVar(&fetchBands, "bands", nil, "bands to export (default all)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	ctx := context.Background()

	set, err := fetchWithPhot(ctx, fetchPhot)
	if err != nil {
		return err
	}

	if fetchMergePhot != "" {
		right, err := fetchWithPhot(ctx, fetchMergePhot)
		if err != nil {
			return err
		}
		set, err = domain.Join(set, right, domain.JoinOptions{
			LeftBands:  fetchLeftBands,
			RightBands: fetchRightBands,
		})
		if err != nil {
			return fmt.Errorf("merging photometric systems: %w", err)
		}
	}

	if fetchExportDir != "" {
		paths, err := export.WriteSet(fetchExportDir, set, fetchBands)
		if err != nil {
			return err
		}
		cmd.Printf("wrote %d files to %s\n", len(paths), fetchExportDir)
	}

	if fetchJSON {
		return outputSetJSON(cmd, set)
	}
	return outputSetTable(cmd, set)
}

// fetchWithPhot builds the request settings for the selected mode with the
// given photometric system, and fetches the parsed set.
func fetchWithPhot(ctx context.Context, phot string) (*domain.IsochroneSet, error) {
	opts := services.RequestOptions{
		Model:  fetchModel,
		Phot:   phot,
		Carbon: fetchCarbon,
		CDust:  fetchCDust,
		MDust:  fetchMDust,
		Extra:  map[string]any{},
	}
	for _, kv := range fetchSet {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q is not key=value", kv)
		}
		opts.Extra[key] = coerce(val)
	}

	st, err := buildSettings(opts)
	if err != nil {
		return nil, err
	}
	return fetchService.Fetch(ctx, st)
}

func buildSettings(opts services.RequestOptions) (*settings.Settings, error) {
	switch fetchMode {
	case "single":
		return services.SingleRequest(fetchLogAge, fetchZ, opts)
	case "age-grid":
		return services.AgeGridRequest(fetchZ, fetchLogAge0, fetchLogAge1, fetchDLogAge, opts)
	case "z-grid":
		return services.MetallicityGridRequest(fetchAge0, fetchZ0, fetchZ1, fetchDZ, opts)
	default:
		return nil, fmt.Errorf("unknown mode %q", fetchMode)
	}
}

// coerce turns a --set value into the type the validator expects.
func coerce(val string) any {
	if i, err := strconv.ParseInt(val, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil {
		return f
	}
	return val
}

// isochroneSummary is the JSON shape of one parsed isochrone.
type isochroneSummary struct {
	Z       float64  `json:"z"`
	Age     float64  `json:"age"`
	Rows    int      `json:"rows"`
	Filters []string `json:"filters"`
}

func summarise(set *domain.IsochroneSet) ([]isochroneSummary, error) {
	out := make([]isochroneSummary, 0, set.Len())
	it := set.Iter()
	for iso, ok := it.Next(); ok; iso, ok = it.Next() {
		z, err := iso.Z()
		if err != nil {
			return nil, err
		}
		age, err := iso.Age()
		if err != nil {
			return nil, err
		}
		out = append(out, isochroneSummary{
			Z:       z,
			Age:     age,
			Rows:    iso.NumRows(),
			Filters: iso.FilterNames(),
		})
	}
	return out, nil
}

func outputSetJSON(cmd *cobra.Command, set *domain.IsochroneSet) error {
	summaries, err := summarise(set)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}

func outputSetTable(cmd *cobra.Command, set *domain.IsochroneSet) error {
	summaries, err := summarise(set)
	if err != nil {
		return err
	}
	cmd.Printf("%d isochrones\n", len(summaries))
	for _, s := range summaries {
		cmd.Printf("  Z=%-8.4f age=%-12.4g rows=%-5d filters=%s\n",
			s.Z, s.Age, s.Rows, strings.Join(s.Filters, ","))
	}
	return nil
}
