package cli

import (
	"fmt"
	"os"

	"github.com/dkoval/ctxpress/internal/cache"
	"github.com/dkoval/ctxpress/internal/model"
	"github.com/spf13/cobra"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the compression-result cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached compression results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := model.DefaultConfig()
		dir := cacheDir(cfg)

		disk := cache.NewDiskCache(dir, cfg.Cache.DiskTTL)
		if err := disk.Clear(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("clear cache: %w", err)
		}

		fmt.Printf("✓ Cleared cache: %s\n", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
