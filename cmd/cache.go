// =============================================================================
// CAPPS Converter - Cache Command
// =============================================================================
//
// Operator access to the brand cache. Cached entries never expire, so the
// only way to force re-resolution of a description (for example after the
// classifier cached a wrong answer, or an UNKNOWN the operator can now
// name) is to remove or overwrite its entry here.
//
// COMMAND USAGE:
//   capps cache list
//   capps cache remove <description>
//   capps cache set <description> <brand>
//   capps cache clear
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/storeops/capps-converter/internal/brand"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and edit the brand resolution cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached description -> brand entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := openCache()
		if err != nil {
			return err
		}
		entries := cache.Entries()
		if len(entries) == 0 {
			fmt.Println("Brand cache is empty.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%-50s %s\n", e[0], e[1])
		}
		fmt.Printf("\n%d entr%s\n", len(entries), plural(len(entries), "y", "ies"))
		return nil
	},
}

var cacheRemoveCmd = &cobra.Command{
	Use:   "remove <description>",
	Short: "Remove one entry so it is re-resolved on the next run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := openCache()
		if err != nil {
			return err
		}
		if err := cache.Remove(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed cache entry for %q.\n", args[0])
		return nil
	},
}

var cacheSetCmd = &cobra.Command{
	Use:   "set <description> <brand>",
	Short: "Set or overwrite the brand for a description",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := openCache()
		if err != nil {
			return err
		}
		if err := cache.Put(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Cached %q -> %q.\n", args[0], args[1])
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := openCache()
		if err != nil {
			return err
		}
		n := cache.Len()
		if err := cache.Clear(); err != nil {
			return err
		}
		fmt.Printf("Cleared %d entr%s.\n", n, plural(n, "y", "ies"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheListCmd, cacheRemoveCmd, cacheSetCmd, cacheClearCmd)
}

// openCache loads the cache at the configured path. Unlike the pipeline,
// cache editing treats a broken cache file as fatal: silently "editing" a
// cache that cannot be persisted would mislead the operator.
func openCache() (*brand.Cache, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}
	cache, err := brand.OpenCache(cfg.CacheFile)
	if err != nil {
		return nil, fmt.Errorf("cannot edit brand cache: %w", err)
	}
	return cache, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
