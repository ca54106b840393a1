package spaced_repetition

import (
	"math"
	"time"

	"github.com/OuchiGenki/comp-prog-trainer/pkg/models"
)

// Quality represents the quality of recall in SM-2.
type Quality int

const (
	// Complete blackout, unable to recall
	QualityBlackout Quality = 0
	// Failed to recall the approach
	QualityForgot Quality = 1
	// Incorrect recall but the approach felt familiar
	QualityFamiliar Quality = 2
	// Correct recall with significant effort
	QualityHard Quality = 3
	// Correct recall after some hesitation
	QualityGood Quality = 4
	// Perfect recall with no hesitation
	QualityEasy Quality = 5
)

// The rating surface only exposes 1/3/4/5; 0 and 2 are accepted here and
// take the same failed-recall path as 1.
const passThreshold = QualityHard

// MinEaseFactor is the SM-2 floor preventing runaway interval shrinkage.
const MinEaseFactor = 1.3

// InitialEaseFactor is the ease factor assigned to a fresh card.
const InitialEaseFactor = 2.5

// Thresholds past which a card counts as mastered.
const (
	masteredInterval = 21
	masteredEase     = 2.0
)

// DateLayout is the calendar-date format used for review dates. Review
// scheduling works in whole days; no time component is kept.
const DateLayout = "2006-01-02"

// Result is the algorithm state produced by one review.
type Result struct {
	EaseFactor     float64
	Interval       int
	Repetitions    int
	NextReviewDate string
	Status         string
}

// ComputeNext applies the SM-2 algorithm to the card's current state and
// the given recall quality. It is a pure function: the current time is
// injected and no state outside the arguments is touched.
//
// Failed recall (quality < 3) resets repetitions to 0 and the interval
// to 1 day regardless of prior history. Successful recall follows the
// graduated intervals 1, 6, round(interval * EF).
func ComputeNext(card models.ReviewCard, quality Quality, now time.Time) Result {
	q := float64(quality)
	newEase := card.EaseFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if newEase < MinEaseFactor {
		newEase = MinEaseFactor
	}

	interval := card.Interval
	repetitions := card.Repetitions
	if quality < passThreshold {
		repetitions = 0
		interval = 1
	} else {
		repetitions++
		switch repetitions {
		case 1:
			interval = 1
		case 2:
			interval = 6
		default:
			interval = int(math.Round(float64(interval) * newEase))
		}
	}

	return Result{
		EaseFactor:     newEase,
		Interval:       interval,
		Repetitions:    repetitions,
		NextReviewDate: now.AddDate(0, 0, interval).Format(DateLayout),
		Status:         DeriveStatus(repetitions, interval, newEase),
	}
}

// DeriveStatus projects the card status from the numeric SM-2 state.
// The stored status column is only a cache of this projection.
func DeriveStatus(repetitions, interval int, easeFactor float64) string {
	if repetitions == 0 {
		return models.StatusLearning
	}
	if interval >= masteredInterval && easeFactor >= masteredEase {
		return models.StatusMastered
	}
	return models.StatusReviewing
}

// NewCard returns the initial state for a problem that was just added to
// review. The card is due immediately.
func NewCard(problemID string, now time.Time) models.ReviewCard {
	return models.ReviewCard{
		ProblemID:      problemID,
		EaseFactor:     InitialEaseFactor,
		Interval:       0,
		Repetitions:    0,
		NextReviewDate: now.Format(DateLayout),
		Status:         models.StatusLearning,
	}
}
