package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OuchiGenki/comp-prog-trainer/internal/spaced_repetition"
	"github.com/OuchiGenki/comp-prog-trainer/pkg/models"
)

func TestAddToReviewCreatesDueCard(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewReviewRepository()

	require.NoError(t, repo.AddToReview(ctx, "abc300_a"))

	card, err := repo.GetCard(ctx, "abc300_a")
	require.NoError(t, err)
	assert.Equal(t, spaced_repetition.InitialEaseFactor, card.EaseFactor)
	assert.Equal(t, 0, card.Repetitions)
	assert.Equal(t, models.StatusLearning, card.Status)
	assert.Equal(t, time.Now().Format(spaced_repetition.DateLayout), card.NextReviewDate)

	count, err := repo.GetDueCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAddToReviewIsIdempotent(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewReviewRepository()

	require.NoError(t, repo.AddToReview(ctx, "abc300_a"))
	_, err := repo.SubmitReview(ctx, "abc300_a", spaced_repetition.QualityEasy)
	require.NoError(t, err)

	before, err := repo.GetCard(ctx, "abc300_a")
	require.NoError(t, err)

	// Re-adding must not clobber the accumulated progress.
	require.NoError(t, repo.AddToReview(ctx, "abc300_a"))

	after, err := repo.GetCard(ctx, "abc300_a")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRemoveFromReview(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewReviewRepository()

	require.NoError(t, repo.AddToReview(ctx, "abc300_a"))
	require.NoError(t, repo.RemoveFromReview(ctx, "abc300_a"))

	_, err := repo.GetCard(ctx, "abc300_a")
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing a card that doesn't exist is not an error.
	assert.NoError(t, repo.RemoveFromReview(ctx, "abc300_a"))
}

func TestRemoveFromReviewKeepsLogs(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewReviewRepository()

	require.NoError(t, repo.AddToReview(ctx, "abc300_a"))
	_, err := repo.SubmitReview(ctx, "abc300_a", spaced_repetition.QualityGood)
	require.NoError(t, err)
	require.NoError(t, repo.RemoveFromReview(ctx, "abc300_a"))

	logs, err := repo.GetLogs(ctx, "abc300_a")
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestSubmitReviewNotFound(t *testing.T) {
	setupTestDB(t)
	repo := NewReviewRepository()

	_, err := repo.SubmitReview(context.Background(), "missing", spaced_repetition.QualityGood)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitReviewUpdatesCardAndAppendsLog(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewReviewRepository()

	require.NoError(t, repo.AddToReview(ctx, "abc300_a"))

	card, err := repo.SubmitReview(ctx, "abc300_a", spaced_repetition.QualityEasy)
	require.NoError(t, err)
	assert.InDelta(t, 2.6, card.EaseFactor, 1e-9)
	assert.Equal(t, 1, card.Interval)
	assert.Equal(t, 1, card.Repetitions)
	assert.Equal(t, models.StatusReviewing, card.Status)
	require.NotNil(t, card.LastReviewedAt)

	stored, err := repo.GetCard(ctx, "abc300_a")
	require.NoError(t, err)
	assert.Equal(t, card, stored)

	logs, err := repo.GetLogs(ctx, "abc300_a")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "abc300_a", logs[0].ProblemID)
	assert.Equal(t, int(spaced_repetition.QualityEasy), logs[0].Quality)
	assert.Equal(t, *card.LastReviewedAt, logs[0].ReviewedAt)
}

func TestSubmitReviewOneLogPerCall(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewReviewRepository()

	require.NoError(t, repo.AddToReview(ctx, "abc300_a"))
	for i := 0; i < 5; i++ {
		_, err := repo.SubmitReview(ctx, "abc300_a", spaced_repetition.QualityGood)
		require.NoError(t, err)
	}

	logs, err := repo.GetLogs(ctx, "abc300_a")
	require.NoError(t, err)
	assert.Len(t, logs, 5)
}

func TestGetDueCardsBoundary(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewReviewRepository()

	today := time.Now().Format(spaced_repetition.DateLayout)
	yesterday := time.Now().AddDate(0, 0, -1).Format(spaced_repetition.DateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(spaced_repetition.DateLayout)

	for id, due := range map[string]string{
		"overdue":      yesterday,
		"due_today":    today,
		"due_tomorrow": tomorrow,
	} {
		require.NoError(t, repo.AddToReview(ctx, id))
		_, err := DB.Exec(DB.Rebind("UPDATE review_cards SET next_review_date = ? WHERE problem_id = ?"), due, id)
		require.NoError(t, err)
	}

	due, err := repo.GetDueCards(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(due))
	for _, card := range due {
		ids = append(ids, card.ProblemID)
	}
	assert.ElementsMatch(t, []string{"overdue", "due_today"}, ids)

	count, err := repo.GetDueCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestGetStats(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewReviewRepository()

	// learning: fresh card
	require.NoError(t, repo.AddToReview(ctx, "learning"))

	// reviewing: one successful review
	require.NoError(t, repo.AddToReview(ctx, "reviewing"))
	_, err := repo.SubmitReview(ctx, "reviewing", spaced_repetition.QualityGood)
	require.NoError(t, err)

	// mastered: state written directly past both thresholds
	require.NoError(t, repo.AddToReview(ctx, "mastered"))
	_, err = DB.Exec(DB.Rebind(`UPDATE review_cards SET repetitions = 5, "interval" = 30, ease_factor = 2.4, status = ?, next_review_date = ? WHERE problem_id = ?`),
		models.StatusMastered, time.Now().AddDate(0, 0, 30).Format(spaced_repetition.DateLayout), "mastered")
	require.NoError(t, err)

	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &models.ReviewStats{
		Total:     3,
		Due:       1, // only the fresh card; the others are scheduled ahead
		Learning:  1,
		Reviewing: 1,
		Mastered:  1,
	}, stats)
}

func TestGetRecentActivity(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewReviewRepository()

	require.NoError(t, repo.AddToReview(ctx, "abc300_a"))
	_, err := repo.SubmitReview(ctx, "abc300_a", spaced_repetition.QualityGood)
	require.NoError(t, err)
	_, err = repo.SubmitReview(ctx, "abc300_a", spaced_repetition.QualityGood)
	require.NoError(t, err)

	activity, err := repo.GetRecentActivity(ctx, 7)
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, time.Now().Format(spaced_repetition.DateLayout), activity[0].Date)
	assert.Equal(t, 2, activity[0].Count)
}
