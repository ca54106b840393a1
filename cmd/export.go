package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/OuchiGenki/comp-prog-trainer/internal/database"
	"github.com/OuchiGenki/comp-prog-trainer/internal/excel"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export review data to a backup file",
	Long: `Export review cards, notes, bookmarks and review logs.
A .json file holds the full snapshot usable by import; a .xlsx or .csv
file holds a human-readable review sheet instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := fmt.Sprintf("comp-prog-trainer-backup-%s.json", time.Now().Format("2006-01-02"))
		if len(args) > 0 {
			path = args[0]
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx", ".csv":
			if err := exportSheet(cmd.Context(), path); err != nil {
				return err
			}
		default:
			if err := exportSnapshot(cmd.Context(), path); err != nil {
				return err
			}
		}

		fmt.Printf("✅ Exported to %s\n", path)
		return nil
	},
}

// exportSnapshot writes the full JSON snapshot.
func exportSnapshot(ctx context.Context, path string) error {
	snapshots := database.NewSnapshotRepository()
	snap, err := snapshots.Export(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %v", err)
	}
	return os.WriteFile(path, data, 0644)
}

// exportSheet writes the human-readable review sheet.
func exportSheet(ctx context.Context, path string) error {
	reviews := database.NewReviewRepository()
	problems := database.NewProblemRepository()

	cards, err := reviews.GetAllCards(ctx)
	if err != nil {
		return err
	}

	titleByID := make(map[string]string, len(cards))
	for _, card := range cards {
		if p, err := problems.GetByID(ctx, card.ProblemID); err == nil {
			titleByID[card.ProblemID] = p.Title
		}
	}

	return excel.ExportReviews(path, excel.BuildRows(cards, titleByID))
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
