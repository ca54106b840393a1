package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/OuchiGenki/comp-prog-trainer/internal/database"
	"github.com/OuchiGenki/comp-prog-trainer/pkg/models"
)

var (
	problemsSearch     string
	problemsMinDiff    int
	problemsMaxDiff    int
	problemsCategory   string
	problemsBookmarked bool
	problemsLimit      int
)

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "Browse the cached problem catalog",
	Long: `Browse the locally cached catalog, joined with difficulty estimates,
contest metadata and your own annotations. Experimental difficulty
estimates are shown as Unrated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := database.ProblemQuery{
			Search:         problemsSearch,
			Category:       problemsCategory,
			OnlyBookmarked: problemsBookmarked,
			Limit:          problemsLimit,
		}
		if cmd.Flags().Changed("min-difficulty") {
			query.MinDifficulty = &problemsMinDiff
		}
		if cmd.Flags().Changed("max-difficulty") {
			query.MaxDifficulty = &problemsMaxDiff
		}

		problems := database.NewProblemRepository()
		rows, err := problems.ListDetailed(cmd.Context(), query)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No problems match. Is the catalog synced? (`comp-prog-trainer sync`)")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Problem\tTitle\tContest\tDifficulty\tMarks")
		fmt.Fprintln(w, "-------\t-----\t-------\t----------\t-----")
		for _, row := range rows {
			difficulty := "Unrated"
			if row.Difficulty != nil && !row.IsExperimental {
				difficulty = fmt.Sprintf("%d (%s)", *row.Difficulty, models.DifficultyLabel(row.Difficulty))
			}
			marks := ""
			if row.IsBookmarked {
				marks += "★"
			}
			if row.HasNote {
				marks += "✎"
			}
			if row.ReviewStatus != "" {
				marks += " [" + row.ReviewStatus + "]"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				row.ID, row.Title, row.ContestTitle, difficulty, marks)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(problemsCmd)
	problemsCmd.Flags().StringVarP(&problemsSearch, "search", "s", "", "Match against problem name and title")
	problemsCmd.Flags().IntVar(&problemsMinDiff, "min-difficulty", 0, "Minimum difficulty estimate")
	problemsCmd.Flags().IntVar(&problemsMaxDiff, "max-difficulty", 0, "Maximum difficulty estimate")
	problemsCmd.Flags().StringVarP(&problemsCategory, "category", "c", "", "Contest category: ABC, ARC, AGC or Other")
	problemsCmd.Flags().BoolVarP(&problemsBookmarked, "bookmarked", "b", false, "Only bookmarked problems")
	problemsCmd.Flags().IntVarP(&problemsLimit, "limit", "n", 50, "Maximum rows to print (0 for all)")
}
