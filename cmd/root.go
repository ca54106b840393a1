package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/OuchiGenki/comp-prog-trainer/internal/atcoder"
	"github.com/OuchiGenki/comp-prog-trainer/internal/database"
	syncengine "github.com/OuchiGenki/comp-prog-trainer/internal/sync"
)

var rootCmd = &cobra.Command{
	Use:   "comp-prog-trainer",
	Short: "Spaced-repetition trainer for AtCoder problems",
	Long: `comp-prog-trainer keeps a local mirror of the AtCoder Problems catalog
and schedules your solved problems for review with the SM-2 algorithm.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real environment variables win either way.
		_ = godotenv.Load()
		return database.Connect()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		database.Close()
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// newSyncEngine wires the catalog client and store into a sync engine.
func newSyncEngine() *syncengine.Engine {
	return syncengine.NewEngine(atcoder.New(), database.NewProblemRepository(), database.DataDir())
}

// problemURL builds the atcoder.jp task page URL for a problem.
func problemURL(contestID, problemID string) string {
	return fmt.Sprintf("https://atcoder.jp/contests/%s/tasks/%s", contestID, problemID)
}
