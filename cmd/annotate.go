package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OuchiGenki/comp-prog-trainer/internal/database"
)

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark [problem-id]",
	Short: "Toggle a bookmark on a problem",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		annotations := database.NewAnnotationRepository()
		bookmarked, err := annotations.ToggleBookmark(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if bookmarked {
			fmt.Printf("★ Bookmarked %s\n", args[0])
		} else {
			fmt.Printf("☆ Removed bookmark from %s\n", args[0])
		}
		return nil
	},
}

var noteDelete bool

var noteCmd = &cobra.Command{
	Use:   "note [problem-id] [text...]",
	Short: "Show, set or delete the note on a problem",
	Long: `With only a problem id, print the stored note.
With additional arguments, store them as the note. With --delete,
remove the note.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		problemID := args[0]
		annotations := database.NewAnnotationRepository()

		if noteDelete {
			if err := annotations.DeleteNote(cmd.Context(), problemID); err != nil {
				return err
			}
			fmt.Printf("🗑  Deleted note on %s\n", problemID)
			return nil
		}

		if len(args) > 1 {
			content := strings.Join(args[1:], " ")
			if err := annotations.SetNote(cmd.Context(), problemID, content); err != nil {
				return err
			}
			fmt.Printf("✎ Saved note on %s\n", problemID)
			return nil
		}

		note, err := annotations.GetNote(cmd.Context(), problemID)
		if errors.Is(err, database.ErrNotFound) {
			fmt.Printf("No note on %s\n", problemID)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s (updated %s)\n", note.Content, note.UpdatedAt)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bookmarkCmd)
	rootCmd.AddCommand(noteCmd)
	noteCmd.Flags().BoolVar(&noteDelete, "delete", false, "Delete the note")
}
