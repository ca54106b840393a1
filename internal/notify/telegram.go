package notify

import (
	"fmt"
	"log"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier sends due-card reminders to a single Telegram chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram creates a notifier from TELEGRAM_BOT_TOKEN and
// TELEGRAM_CHAT_ID.
func NewTelegram() (*TelegramNotifier, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID environment variable is not a chat id: %v", err)
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %v", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// SendDueReminder sends the due-card count to the configured chat.
func (n *TelegramNotifier) SendDueReminder(count int) error {
	text := fmt.Sprintf("You have %d problem(s) due for review. Run `comp-prog-trainer review` to start.", count)
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %v", err)
	}
	return nil
}

// LogNotifier is the fallback when Telegram is not configured; it just
// logs the reminder locally.
type LogNotifier struct{}

// SendDueReminder logs the due-card count.
func (LogNotifier) SendDueReminder(count int) error {
	log.Printf("%d problem(s) due for review", count)
	return nil
}
