package cli

import (
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local result cache",
	RunE:  runCacheList,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached result fingerprints",
	RunE:  runCacheList,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached results",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	keys, err := resultCache.Keys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		cmd.Println("cache is empty")
		return nil
	}
	for _, k := range keys {
		cmd.Println(k)
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	keys, err := resultCache.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := resultCache.Delete(k); err != nil {
			return err
		}
	}
	cmd.Printf("removed %d cached results\n", len(keys))
	return nil
}
