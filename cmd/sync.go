package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var syncForce bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the local catalog cache from the AtCoder Problems API",
	Long: `Download the problems, difficulty models and contests datasets and
replace the local cache. A cache younger than 24 hours is reused unless
--force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := newSyncEngine()

		if !syncForce && engine.CacheValid(cmd.Context()) {
			if lastSync, ok := engine.LastSyncTime(); ok {
				fmt.Printf("Catalog cache is fresh (last sync %s). Use --force to re-fetch.\n",
					lastSync.Format(time.RFC1123))
			}
			return nil
		}

		err := engine.Sync(cmd.Context(), func(stage string, percent int) {
			fmt.Printf("[%3d%%] %s\n", percent, stage)
		}, syncForce)
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		fmt.Println("✅ Catalog synced")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().BoolVarP(&syncForce, "force", "f", false, "Re-fetch even if the cache is fresh")
}
