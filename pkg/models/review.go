package models

// Card status values. Status is a projection of the numeric SM-2 state
// (repetitions, interval, ease factor); it is persisted for indexed
// lookups but recomputed on every review.
const (
	StatusLearning  = "learning"
	StatusReviewing = "reviewing"
	StatusMastered  = "mastered"
)

// ReviewCard tracks the SM-2 state for one problem. At most one card
// exists per problem.
type ReviewCard struct {
	ProblemID      string  `json:"problem_id" db:"problem_id"`
	EaseFactor     float64 `json:"easeFactor" db:"ease_factor"`
	Interval       int     `json:"interval" db:"interval"`
	Repetitions    int     `json:"repetitions" db:"repetitions"`
	NextReviewDate string  `json:"nextReviewDate" db:"next_review_date"` // calendar date, YYYY-MM-DD
	LastReviewedAt *string `json:"lastReviewedAt,omitempty" db:"last_reviewed_at"`
	Status         string  `json:"status" db:"status"`
}

// ReviewLog is one append-only entry of the review audit trail. Entries
// are never updated or deleted individually.
type ReviewLog struct {
	ID         int64  `json:"id,omitempty" db:"id"`
	ProblemID  string `json:"problem_id" db:"problem_id"`
	ReviewedAt string `json:"reviewedAt" db:"reviewed_at"`
	Quality    int    `json:"quality" db:"quality"`
}

// ReviewStats aggregates the state of the whole review set.
type ReviewStats struct {
	Total     int `json:"total"`
	Due       int `json:"due"`
	Learning  int `json:"learning"`
	Reviewing int `json:"reviewing"`
	Mastered  int `json:"mastered"`
}

// DailyActivity counts reviews submitted on one calendar day.
type DailyActivity struct {
	Date  string `json:"date" db:"date"`
	Count int    `json:"count" db:"count"`
}
