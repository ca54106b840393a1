package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OuchiGenki/comp-prog-trainer/internal/database"
)

var addCmd = &cobra.Command{
	Use:   "add [problem-id]",
	Short: "Add a problem to the review schedule",
	Long: `Add a problem to the review schedule. The card is due immediately.
Adding a problem that is already scheduled keeps its existing progress.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		problemID := args[0]

		problems := database.NewProblemRepository()
		problem, err := problems.GetByID(cmd.Context(), problemID)
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("problem %q is not in the local catalog (run `comp-prog-trainer sync` first)", problemID)
		}
		if err != nil {
			return err
		}

		reviews := database.NewReviewRepository()
		if err := reviews.AddToReview(cmd.Context(), problemID); err != nil {
			return err
		}

		fmt.Printf("✅ Added %s (%s), due today\n", problem.Title, problemID)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove [problem-id]",
	Short: "Remove a problem from the review schedule",
	Long: `Remove a problem's review card. Its review history is kept.
Removing a problem that is not scheduled is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reviews := database.NewReviewRepository()
		if err := reviews.RemoveFromReview(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("🗑  Removed %s from review\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
}
