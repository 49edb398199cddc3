// Package cli implements the isofetch command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starfield-labs/isofetch/internal/adapters/driven/cache/memory"
	cachesqlite "github.com/starfield-labs/isofetch/internal/adapters/driven/cache/sqlite"
	"github.com/starfield-labs/isofetch/internal/adapters/driven/cmdweb"
	"github.com/starfield-labs/isofetch/internal/core/ports/driven"
	"github.com/starfield-labs/isofetch/internal/core/services"
	"github.com/starfield-labs/isofetch/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verboseFlag  bool
	cacheDirFlag string
	noCacheFlag  bool
	baseURLFlag  string
)

var (
	resultCache  driven.ResultCache
	fetchService *services.FetchService
)

var rootCmd = &cobra.Command{
	Use:   "isofetch",
	Short: "Fetch and parse Padova isochrone tables",
	Long: `isofetch submits requests to the Padova CMD web interface, caches the
raw result tables locally, and parses them into per-age, per-metallicity
isochrones for export to downstream tools.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cacheDirFlag, "cache-dir", "", "cache directory (default ~/.isofetch)")
	rootCmd.PersistentFlags().BoolVar(&noCacheFlag, "no-cache", false, "keep results in memory only")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", cmdweb.DefaultBaseURL, "CMD service base URL")
}

// ensureServices wires the cache, web client and fetch service on first
// use. Commands that touch neither (version) skip the cost.
func ensureServices() error {
	if fetchService != nil {
		return nil
	}

	if noCacheFlag {
		resultCache = memory.NewCache()
	} else {
		cache, err := cachesqlite.NewCache(cacheDirFlag)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		resultCache = cache
	}

	fetchService = services.NewFetchService(resultCache, cmdweb.NewClient(baseURLFlag))
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
