package models

// Problem represents a single problem from the AtCoder Problems catalog.
// Rows are immutable once synced and replaced wholesale on each sync.
type Problem struct {
	ID           string `json:"id" db:"id"`
	ContestID    string `json:"contest_id" db:"contest_id"`
	ProblemIndex string `json:"problem_index" db:"problem_index"`
	Name         string `json:"name" db:"name"`
	Title        string `json:"title" db:"title"`
}

// ProblemModel holds the difficulty estimation for a problem. The upstream
// API serves these as an object keyed by problem id; the key is carried
// here as ProblemID. All statistical fields are optional.
type ProblemModel struct {
	ProblemID      string   `json:"problem_id" db:"problem_id"`
	Slope          *float64 `json:"slope,omitempty" db:"slope"`
	Intercept      *float64 `json:"intercept,omitempty" db:"intercept"`
	Variance       *float64 `json:"variance,omitempty" db:"variance"`
	Difficulty     *int     `json:"difficulty,omitempty" db:"difficulty"`
	Discrimination *float64 `json:"discrimination,omitempty" db:"discrimination"`
	IsExperimental bool     `json:"is_experimental" db:"is_experimental"`
	RawPoint       *float64 `json:"raw_point,omitempty" db:"raw_point"`
}

// Rated reports whether the model carries a usable difficulty estimate.
// An experimental or absent difficulty counts as unrated, not as zero.
func (m *ProblemModel) Rated() bool {
	return m != nil && m.Difficulty != nil && !m.IsExperimental
}

// Contest represents a contest from the catalog. Problems reference a
// contest by id; the reference may dangle if a sync was partial.
type Contest struct {
	ID               string `json:"id" db:"id"`
	StartEpochSecond int64  `json:"start_epoch_second" db:"start_epoch_second"`
	DurationSecond   int64  `json:"duration_second" db:"duration_second"`
	Title            string `json:"title" db:"title"`
	RateChange       string `json:"rate_change" db:"rate_change"`
}

// ProblemWithDetails is a Problem joined with its difficulty model,
// contest metadata and the user's annotations for display purposes.
type ProblemWithDetails struct {
	Problem
	Difficulty        *int   `db:"difficulty"`
	IsExperimental    bool   `db:"is_experimental"`
	ContestTitle      string `db:"contest_title"`
	ContestStartEpoch int64  `db:"contest_start_epoch"`
	IsBookmarked      bool   `db:"is_bookmarked"`
	HasNote           bool   `db:"has_note"`
	ReviewStatus      string `db:"review_status"`
	NextReviewDate    string `db:"next_review_date"`
}
