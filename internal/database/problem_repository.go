package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/OuchiGenki/comp-prog-trainer/pkg/models"
)

// insertChunkSize bounds the number of rows per bulk INSERT so a single
// statement stays well under SQLite's bound-parameter ceiling.
const insertChunkSize = 2000

// ProblemRepository handles database operations for the catalog tables
// (problems, problem models, contests). The catalog is read-only between
// syncs and replaced wholesale by ReplaceCatalog.
type ProblemRepository struct{}

// NewProblemRepository creates a new repository instance
func NewProblemRepository() *ProblemRepository {
	return &ProblemRepository{}
}

// ReplaceCatalog atomically swaps the three catalog tables for the given
// rows. Each table is cleared and re-inserted inside one transaction so
// a concurrent reader never observes a half-cleared catalog.
func (r *ProblemRepository) ReplaceCatalog(ctx context.Context, problems []models.Problem, problemModels []models.ProblemModel, contests []models.Contest) error {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin catalog transaction: %v", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"problems", "problem_models", "contests"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %v", table, err)
		}
	}

	if err := bulkInsert(ctx, tx, `
		INSERT INTO problems (id, contest_id, problem_index, name, title)
		VALUES (:id, :contest_id, :problem_index, :name, :title)`,
		problems); err != nil {
		return fmt.Errorf("failed to insert problems: %v", err)
	}

	if err := bulkInsert(ctx, tx, `
		INSERT INTO problem_models (problem_id, slope, intercept, variance, difficulty, discrimination, is_experimental, raw_point)
		VALUES (:problem_id, :slope, :intercept, :variance, :difficulty, :discrimination, :is_experimental, :raw_point)`,
		problemModels); err != nil {
		return fmt.Errorf("failed to insert problem models: %v", err)
	}

	if err := bulkInsert(ctx, tx, `
		INSERT INTO contests (id, start_epoch_second, duration_second, title, rate_change)
		VALUES (:id, :start_epoch_second, :duration_second, :title, :rate_change)`,
		contests); err != nil {
		return fmt.Errorf("failed to insert contests: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog transaction: %v", err)
	}
	return nil
}

// bulkInsert writes rows in fixed-size chunks through a named statement.
func bulkInsert[T any](ctx context.Context, tx *sqlx.Tx, query string, rows []T) error {
	for start := 0; start < len(rows); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(rows) {
			end = len(rows)
		}
		if _, err := tx.NamedExecContext(ctx, query, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// CountProblems returns the number of cached catalog problems.
func (r *ProblemRepository) CountProblems(ctx context.Context) (int, error) {
	var count int
	if err := DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM problems"); err != nil {
		return 0, fmt.Errorf("failed to count problems: %v", err)
	}
	return count, nil
}

// GetByID returns one problem by its catalog id.
func (r *ProblemRepository) GetByID(ctx context.Context, id string) (*models.Problem, error) {
	var p models.Problem
	err := DB.GetContext(ctx, &p, DB.Rebind("SELECT * FROM problems WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get problem: %v", err)
	}
	return &p, nil
}

// GetModel returns the difficulty model for a problem, or ErrNotFound
// when the catalog has no model for it.
func (r *ProblemRepository) GetModel(ctx context.Context, problemID string) (*models.ProblemModel, error) {
	var m models.ProblemModel
	err := DB.GetContext(ctx, &m, DB.Rebind("SELECT * FROM problem_models WHERE problem_id = ?"), problemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get problem model: %v", err)
	}
	return &m, nil
}

// GetContest returns one contest by id.
func (r *ProblemRepository) GetContest(ctx context.Context, id string) (*models.Contest, error) {
	var c models.Contest
	err := DB.GetContext(ctx, &c, DB.Rebind("SELECT * FROM contests WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contest: %v", err)
	}
	return &c, nil
}

// ProblemQuery filters the detailed problem listing.
type ProblemQuery struct {
	Search         string // matched against name and title, case-insensitive
	MinDifficulty  *int
	MaxDifficulty  *int
	Category       string // ABC, ARC, AGC or Other; empty means all
	OnlyBookmarked bool
	Limit          int
}

// ListDetailed returns problems joined with their difficulty model,
// contest metadata and user annotations, newest contests first.
func (r *ProblemRepository) ListDetailed(ctx context.Context, q ProblemQuery) ([]models.ProblemWithDetails, error) {
	query := `
		SELECT
			p.id, p.contest_id, p.problem_index, p.name, p.title,
			m.difficulty AS difficulty,
			COALESCE(m.is_experimental, false) AS is_experimental,
			COALESCE(c.title, '') AS contest_title,
			COALESCE(c.start_epoch_second, 0) AS contest_start_epoch,
			CASE WHEN b.problem_id IS NULL THEN false ELSE true END AS is_bookmarked,
			CASE WHEN n.problem_id IS NULL THEN false ELSE true END AS has_note,
			COALESCE(r.status, '') AS review_status,
			COALESCE(r.next_review_date, '') AS next_review_date
		FROM problems p
		LEFT JOIN problem_models m ON m.problem_id = p.id
		LEFT JOIN contests c ON c.id = p.contest_id
		LEFT JOIN bookmarks b ON b.problem_id = p.id
		LEFT JOIN problem_notes n ON n.problem_id = p.id
		LEFT JOIN review_cards r ON r.problem_id = p.id
	`
	var (
		conditions []string
		args       []interface{}
	)
	if q.Search != "" {
		conditions = append(conditions, "(LOWER(p.name) LIKE LOWER(?) OR LOWER(p.title) LIKE LOWER(?))")
		pattern := "%" + q.Search + "%"
		args = append(args, pattern, pattern)
	}
	if q.MinDifficulty != nil {
		conditions = append(conditions, "m.difficulty >= ? AND m.is_experimental = false")
		args = append(args, *q.MinDifficulty)
	}
	if q.MaxDifficulty != nil {
		conditions = append(conditions, "m.difficulty <= ? AND m.is_experimental = false")
		args = append(args, *q.MaxDifficulty)
	}
	if q.OnlyBookmarked {
		conditions = append(conditions, "b.problem_id IS NOT NULL")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.start_epoch_second DESC, p.problem_index ASC"
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	var rows []models.ProblemWithDetails
	if err := DB.SelectContext(ctx, &rows, DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list problems: %v", err)
	}

	// Contest categories are derived from id prefixes, which SQL can't
	// express portably, so the category filter is applied here.
	if q.Category != "" {
		filtered := rows[:0]
		for _, row := range rows {
			if models.ContestCategory(row.ContestID) == q.Category {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	return rows, nil
}
