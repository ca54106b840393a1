package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/OuchiGenki/comp-prog-trainer/internal/database"
	syncengine "github.com/OuchiGenki/comp-prog-trainer/internal/sync"
)

// Default window for due-card reminders (local hours).
const (
	DefaultNotificationStartHour = 9
	DefaultNotificationEndHour   = 21
)

// Notifier delivers due-card reminders.
type Notifier interface {
	SendDueReminder(count int) error
}

// Scheduler manages the periodic jobs of watch mode: a daily catalog
// sync and hourly due-card reminder checks.
type Scheduler struct {
	scheduler *gocron.Scheduler
	engine    *syncengine.Engine
	reviews   *database.ReviewRepository
	notifier  Notifier
}

// New creates a new scheduler instance
func New(engine *syncengine.Engine, reviews *database.ReviewRepository, notifier Notifier) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		engine:    engine,
		reviews:   reviews,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// The sync engine's own 24h cache gate decides whether this run
	// actually touches the network.
	s.scheduler.Every(6).Hours().Do(s.autoSync)
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminder)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) autoSync() {
	err := s.engine.Sync(context.Background(), func(stage string, percent int) {
		log.Printf("Auto-sync: %s (%d%%)", stage, percent)
	}, false)
	if err != nil {
		log.Printf("Auto-sync failed: %v", err)
	}
}

// checkAndSendReminder sends a due-count reminder when inside the
// configured notification hours.
func (s *Scheduler) checkAndSendReminder() {
	currentHour := time.Now().Hour()

	startHour := envHour("NOTIFICATION_START_HOUR", DefaultNotificationStartHour)
	endHour := envHour("NOTIFICATION_END_HOUR", DefaultNotificationEndHour)

	if currentHour < startHour || currentHour > endHour {
		return
	}

	count, err := s.reviews.GetDueCount(context.Background())
	if err != nil {
		log.Printf("Error counting due cards: %v", err)
		return
	}
	if count == 0 {
		return
	}

	if err := s.notifier.SendDueReminder(count); err != nil {
		log.Printf("Error sending due reminder: %v", err)
	}
}

// RunManualCheck forces an immediate reminder check.
func (s *Scheduler) RunManualCheck() error {
	count, err := s.reviews.GetDueCount(context.Background())
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	return s.notifier.SendDueReminder(count)
}

func envHour(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
