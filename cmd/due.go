package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/OuchiGenki/comp-prog-trainer/internal/database"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show problems due for review today",
	RunE: func(cmd *cobra.Command, args []string) error {
		reviews := database.NewReviewRepository()
		problems := database.NewProblemRepository()

		cards, err := reviews.GetDueCards(cmd.Context())
		if err != nil {
			return err
		}
		if len(cards) == 0 {
			fmt.Println("✅ No problems due today! Good job.")
			return nil
		}

		fmt.Printf("🔥 %d problem(s) due today:\n\n", len(cards))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Problem\tTitle\tStatus\tDue\tReps")
		fmt.Fprintln(w, "-------\t-----\t------\t---\t----")
		for _, card := range cards {
			title := ""
			if p, err := problems.GetByID(cmd.Context(), card.ProblemID); err == nil {
				title = p.Title
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
				card.ProblemID, title, card.Status, card.NextReviewDate, card.Repetitions)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(dueCmd)
}
