package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OuchiGenki/comp-prog-trainer/internal/database"
	"github.com/OuchiGenki/comp-prog-trainer/internal/notify"
	"github.com/OuchiGenki/comp-prog-trainer/internal/scheduler"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run in the background: periodic auto-sync and due reminders",
	Long: `Keep the catalog cache fresh and send a reminder when cards come due.
Reminders go to Telegram when TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID
are set, otherwise to the local log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var notifier scheduler.Notifier
		telegram, err := notify.NewTelegram()
		if err != nil {
			log.Printf("Telegram not configured (%v), logging reminders locally", err)
			notifier = notify.LogNotifier{}
		} else {
			notifier = telegram
		}

		s := scheduler.New(newSyncEngine(), database.NewReviewRepository(), notifier)
		s.Start()
		defer s.Stop()

		fmt.Println("Watching. Press Ctrl+C to stop.")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		sig := <-sigChan
		log.Printf("Received signal: %v, shutting down", sig)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
