package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OuchiGenki/comp-prog-trainer/internal/database"
)

const activityDays = 14

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show review statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		reviews := database.NewReviewRepository()

		stats, err := reviews.GetStats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("📊 Review statistics")
		fmt.Println("--------------------")
		fmt.Printf("Total cards: %d\n", stats.Total)
		fmt.Printf("Due today:   %d\n", stats.Due)
		fmt.Printf("Learning:    %d\n", stats.Learning)
		fmt.Printf("Reviewing:   %d\n", stats.Reviewing)
		fmt.Printf("Mastered:    %d\n", stats.Mastered)

		activity, err := reviews.GetRecentActivity(cmd.Context(), activityDays)
		if err != nil {
			return err
		}
		if len(activity) > 0 {
			fmt.Printf("\nReviews over the last %d days:\n", activityDays)
			for _, day := range activity {
				fmt.Printf("%s %s %d\n", day.Date, strings.Repeat("█", day.Count), day.Count)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
