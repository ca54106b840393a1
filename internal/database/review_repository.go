package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/OuchiGenki/comp-prog-trainer/internal/spaced_repetition"
	"github.com/OuchiGenki/comp-prog-trainer/pkg/models"
)

// ReviewRepository handles database operations for review cards and the
// append-only review log.
type ReviewRepository struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewReviewRepository creates a new repository instance
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{locks: make(map[string]*sync.Mutex)}
}

// cardLock returns the mutex serializing reviews of one problem. Two
// concurrent SubmitReview calls for the same card would otherwise race
// on the read-modify-write of the SM-2 state.
func (r *ReviewRepository) cardLock(problemID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[problemID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[problemID] = lock
	}
	return lock
}

// AddToReview creates a fresh card for the problem, due immediately.
// Re-adding an existing card is a no-op so progress is never clobbered.
func (r *ReviewRepository) AddToReview(ctx context.Context, problemID string) error {
	card := spaced_repetition.NewCard(problemID, time.Now())
	query := DB.Rebind(`
		INSERT INTO review_cards (problem_id, ease_factor, "interval", repetitions, next_review_date, status)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (problem_id) DO NOTHING
	`)
	_, err := DB.ExecContext(ctx, query,
		card.ProblemID,
		card.EaseFactor,
		card.Interval,
		card.Repetitions,
		card.NextReviewDate,
		card.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to add review card: %v", err)
	}
	return nil
}

// RemoveFromReview deletes the card for the problem. Removing a card
// that doesn't exist is not an error. Review logs are kept; they form
// an independent audit trail.
func (r *ReviewRepository) RemoveFromReview(ctx context.Context, problemID string) error {
	_, err := DB.ExecContext(ctx, DB.Rebind("DELETE FROM review_cards WHERE problem_id = ?"), problemID)
	if err != nil {
		return fmt.Errorf("failed to remove review card: %v", err)
	}
	return nil
}

// GetCard returns the review card for a problem, or ErrNotFound.
func (r *ReviewRepository) GetCard(ctx context.Context, problemID string) (*models.ReviewCard, error) {
	var card models.ReviewCard
	err := DB.GetContext(ctx, &card, DB.Rebind("SELECT * FROM review_cards WHERE problem_id = ?"), problemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review card: %v", err)
	}
	return &card, nil
}

// SubmitReview records one review: the SM-2 engine computes the next
// state from the stored card and the recall quality, then the card
// update and the log append are committed in one transaction so the
// audit trail never disagrees with the card state.
func (r *ReviewRepository) SubmitReview(ctx context.Context, problemID string, quality spaced_repetition.Quality) (*models.ReviewCard, error) {
	lock := r.cardLock(problemID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now()

	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin review transaction: %v", err)
	}
	defer tx.Rollback()

	var card models.ReviewCard
	err = tx.GetContext(ctx, &card, DB.Rebind("SELECT * FROM review_cards WHERE problem_id = ?"), problemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load review card: %v", err)
	}

	result := spaced_repetition.ComputeNext(card, quality, now)
	reviewedAt := now.Format(time.RFC3339)

	card.EaseFactor = result.EaseFactor
	card.Interval = result.Interval
	card.Repetitions = result.Repetitions
	card.NextReviewDate = result.NextReviewDate
	card.Status = result.Status
	card.LastReviewedAt = &reviewedAt

	_, err = tx.ExecContext(ctx, DB.Rebind(`
		UPDATE review_cards SET
			ease_factor = ?,
			"interval" = ?,
			repetitions = ?,
			next_review_date = ?,
			last_reviewed_at = ?,
			status = ?
		WHERE problem_id = ?
	`),
		card.EaseFactor,
		card.Interval,
		card.Repetitions,
		card.NextReviewDate,
		card.LastReviewedAt,
		card.Status,
		card.ProblemID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update review card: %v", err)
	}

	_, err = tx.ExecContext(ctx, DB.Rebind(`
		INSERT INTO review_logs (problem_id, reviewed_at, quality)
		VALUES (?, ?, ?)
	`), problemID, reviewedAt, int(quality))
	if err != nil {
		return nil, fmt.Errorf("failed to append review log: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit review transaction: %v", err)
	}
	return &card, nil
}

// GetDueCards returns the cards due today or earlier. A card due exactly
// today counts as due. Ordering is not guaranteed.
func (r *ReviewRepository) GetDueCards(ctx context.Context) ([]models.ReviewCard, error) {
	today := time.Now().Format(spaced_repetition.DateLayout)
	var cards []models.ReviewCard
	err := DB.SelectContext(ctx, &cards, DB.Rebind("SELECT * FROM review_cards WHERE next_review_date <= ?"), today)
	if err != nil {
		return nil, fmt.Errorf("failed to get due cards: %v", err)
	}
	return cards, nil
}

// GetDueCount returns the number of cards due today or earlier.
func (r *ReviewRepository) GetDueCount(ctx context.Context) (int, error) {
	today := time.Now().Format(spaced_repetition.DateLayout)
	var count int
	err := DB.GetContext(ctx, &count, DB.Rebind("SELECT COUNT(*) FROM review_cards WHERE next_review_date <= ?"), today)
	if err != nil {
		return 0, fmt.Errorf("failed to count due cards: %v", err)
	}
	return count, nil
}

// GetAllCards returns every review card.
func (r *ReviewRepository) GetAllCards(ctx context.Context) ([]models.ReviewCard, error) {
	var cards []models.ReviewCard
	if err := DB.SelectContext(ctx, &cards, "SELECT * FROM review_cards"); err != nil {
		return nil, fmt.Errorf("failed to get review cards: %v", err)
	}
	return cards, nil
}

// GetStats aggregates the review set. The scan is O(cards), which is
// bounded by the user's review set rather than the catalog.
func (r *ReviewRepository) GetStats(ctx context.Context) (*models.ReviewStats, error) {
	cards, err := r.GetAllCards(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(spaced_repetition.DateLayout)
	stats := &models.ReviewStats{Total: len(cards)}
	for _, card := range cards {
		if card.NextReviewDate <= today {
			stats.Due++
		}
		switch card.Status {
		case models.StatusLearning:
			stats.Learning++
		case models.StatusReviewing:
			stats.Reviewing++
		case models.StatusMastered:
			stats.Mastered++
		}
	}
	return stats, nil
}

// GetLogs returns the review history for one problem, oldest first.
func (r *ReviewRepository) GetLogs(ctx context.Context, problemID string) ([]models.ReviewLog, error) {
	var logs []models.ReviewLog
	err := DB.SelectContext(ctx, &logs,
		DB.Rebind("SELECT * FROM review_logs WHERE problem_id = ? ORDER BY reviewed_at ASC"), problemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review logs: %v", err)
	}
	return logs, nil
}

// GetRecentActivity returns per-day review counts for the last `days`
// calendar days, oldest first. Days without reviews are omitted.
func (r *ReviewRepository) GetRecentActivity(ctx context.Context, days int) ([]models.DailyActivity, error) {
	since := time.Now().AddDate(0, 0, -days).Format(spaced_repetition.DateLayout)
	var activity []models.DailyActivity
	err := DB.SelectContext(ctx, &activity, DB.Rebind(`
		SELECT substr(reviewed_at, 1, 10) AS date, COUNT(*) AS count
		FROM review_logs
		WHERE reviewed_at >= ?
		GROUP BY substr(reviewed_at, 1, 10)
		ORDER BY date ASC
	`), since)
	if err != nil {
		return nil, fmt.Errorf("failed to get review activity: %v", err)
	}
	return activity, nil
}
