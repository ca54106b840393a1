package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OuchiGenki/comp-prog-trainer/internal/database"
	"github.com/OuchiGenki/comp-prog-trainer/internal/spaced_repetition"
	"github.com/OuchiGenki/comp-prog-trainer/pkg/models"
)

var reviewQuality int

var reviewCmd = &cobra.Command{
	Use:   "review [optional problem-id]",
	Short: "Start a review session",
	Long: `Start a review session over all cards due today.
With a problem id, review only that problem. With --quality, record the
rating non-interactively.

Ratings: 5 = easy, 4 = good, 3 = hard, 1 = forgot.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reviews := database.NewReviewRepository()
		problems := database.NewProblemRepository()

		var cards []models.ReviewCard
		if len(args) > 0 {
			card, err := reviews.GetCard(cmd.Context(), args[0])
			if errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("problem %q has no review card (use `comp-prog-trainer add` first)", args[0])
			}
			if err != nil {
				return err
			}
			cards = append(cards, *card)
		} else {
			var err error
			cards, err = reviews.GetDueCards(cmd.Context())
			if err != nil {
				return err
			}
			if len(cards) == 0 {
				fmt.Println("✅ No problems due for review today!")
				return nil
			}
		}

		if cmd.Flags().Changed("quality") {
			if len(args) == 0 {
				return fmt.Errorf("--quality requires a problem id")
			}
			quality, err := parseQuality(strconv.Itoa(reviewQuality))
			if err != nil {
				return err
			}
			updated, err := reviews.SubmitReview(cmd.Context(), cards[0].ProblemID, quality)
			if err != nil {
				return err
			}
			fmt.Printf("✅ Recorded. Next review in %d day(s) (%s)\n", updated.Interval, updated.NextReviewDate)
			return nil
		}

		reader := bufio.NewReader(os.Stdin)
		for i, card := range cards {
			title := card.ProblemID
			if p, err := problems.GetByID(cmd.Context(), card.ProblemID); err == nil {
				title = p.Title
				fmt.Println("\n========================================")
				fmt.Printf("Reviewing [%d/%d]: %s\n", i+1, len(cards), title)
				fmt.Printf("URL: %s\n", problemURL(p.ContestID, p.ID))
			} else {
				fmt.Println("\n========================================")
				fmt.Printf("Reviewing [%d/%d]: %s\n", i+1, len(cards), title)
			}
			fmt.Println("========================================")

			fmt.Print("Rate recall (5 easy / 4 good / 3 hard / 1 forgot, s to skip): ")
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(input)
			if input == "s" || input == "" {
				fmt.Println("⏭  Skipped")
				continue
			}

			quality, err := parseQuality(input)
			if err != nil {
				fmt.Printf("⚠️ %v, skipping\n", err)
				continue
			}

			updated, err := reviews.SubmitReview(cmd.Context(), card.ProblemID, quality)
			if err != nil {
				fmt.Printf("❌ Error recording review: %v\n", err)
				continue
			}
			fmt.Printf("✅ Next review in %d day(s) (%s, %s)\n",
				updated.Interval, updated.NextReviewDate, updated.Status)
		}

		fmt.Println("\n🎉 Review session complete!")
		return nil
	},
}

// parseQuality accepts the ratings the UI exposes: 1, 3, 4 and 5.
func parseQuality(input string) (spaced_repetition.Quality, error) {
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("rating must be a number")
	}
	switch n {
	case 1, 3, 4, 5:
		return spaced_repetition.Quality(n), nil
	default:
		return 0, fmt.Errorf("rating must be 1, 3, 4 or 5")
	}
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().IntVarP(&reviewQuality, "quality", "q", 0, "Record this rating without prompting (requires a problem id)")
}
