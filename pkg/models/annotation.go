package models

// Bookmark marks a problem the user wants to find again.
type Bookmark struct {
	ProblemID string `json:"problem_id" db:"problem_id"`
	CreatedAt string `json:"createdAt" db:"created_at"`
}

// ProblemNote is the user's free-text note attached to a problem.
type ProblemNote struct {
	ProblemID string `json:"problem_id" db:"problem_id"`
	Content   string `json:"content" db:"content"`
	UpdatedAt string `json:"updatedAt" db:"updated_at"`
}
