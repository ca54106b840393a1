package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OuchiGenki/comp-prog-trainer/internal/database"
	"github.com/OuchiGenki/comp-prog-trainer/pkg/models"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import review data from a JSON snapshot",
	Long: `Import a snapshot produced by export. Each collection present in the
file replaces the local one wholesale; collections absent from the file
are left untouched. A malformed file aborts with nothing written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %v", err)
		}

		var snap models.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return fmt.Errorf("%w: %v", database.ErrInvalidSnapshot, err)
		}

		snapshots := database.NewSnapshotRepository()
		if err := snapshots.Import(cmd.Context(), &snap); err != nil {
			return err
		}

		fmt.Printf("✅ Imported %s", args[0])
		if snap.ExportedAt != "" {
			fmt.Printf(" (exported at %s)", snap.ExportedAt)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
