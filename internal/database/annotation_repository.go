package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/OuchiGenki/comp-prog-trainer/pkg/models"
)

// AnnotationRepository handles bookmarks and free-text problem notes.
// They live outside the review core but share the same store.
type AnnotationRepository struct{}

// NewAnnotationRepository creates a new repository instance
func NewAnnotationRepository() *AnnotationRepository {
	return &AnnotationRepository{}
}

// ToggleBookmark flips the bookmark for a problem and reports whether it
// is bookmarked afterwards.
func (r *AnnotationRepository) ToggleBookmark(ctx context.Context, problemID string) (bool, error) {
	res, err := DB.ExecContext(ctx, DB.Rebind("DELETE FROM bookmarks WHERE problem_id = ?"), problemID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle bookmark: %v", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to toggle bookmark: %v", err)
	}
	if deleted > 0 {
		return false, nil
	}

	_, err = DB.ExecContext(ctx, DB.Rebind("INSERT INTO bookmarks (problem_id, created_at) VALUES (?, ?)"),
		problemID, time.Now().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("failed to create bookmark: %v", err)
	}
	return true, nil
}

// IsBookmarked reports whether the problem is bookmarked.
func (r *AnnotationRepository) IsBookmarked(ctx context.Context, problemID string) (bool, error) {
	var count int
	err := DB.GetContext(ctx, &count, DB.Rebind("SELECT COUNT(*) FROM bookmarks WHERE problem_id = ?"), problemID)
	if err != nil {
		return false, fmt.Errorf("failed to check bookmark: %v", err)
	}
	return count > 0, nil
}

// ListBookmarks returns all bookmarks, newest first.
func (r *AnnotationRepository) ListBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	if err := DB.SelectContext(ctx, &bookmarks, "SELECT * FROM bookmarks ORDER BY created_at DESC"); err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %v", err)
	}
	return bookmarks, nil
}

// SetNote creates or replaces the note attached to a problem.
func (r *AnnotationRepository) SetNote(ctx context.Context, problemID, content string) error {
	query := DB.Rebind(`
		INSERT INTO problem_notes (problem_id, content, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (problem_id) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at
	`)
	_, err := DB.ExecContext(ctx, query, problemID, content, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to set note: %v", err)
	}
	return nil
}

// GetNote returns the note for a problem, or ErrNotFound.
func (r *AnnotationRepository) GetNote(ctx context.Context, problemID string) (*models.ProblemNote, error) {
	var note models.ProblemNote
	err := DB.GetContext(ctx, &note, DB.Rebind("SELECT * FROM problem_notes WHERE problem_id = ?"), problemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %v", err)
	}
	return &note, nil
}

// DeleteNote removes the note for a problem; absent notes are ignored.
func (r *AnnotationRepository) DeleteNote(ctx context.Context, problemID string) error {
	_, err := DB.ExecContext(ctx, DB.Rebind("DELETE FROM problem_notes WHERE problem_id = ?"), problemID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %v", err)
	}
	return nil
}

// ListNotes returns all notes.
func (r *AnnotationRepository) ListNotes(ctx context.Context) ([]models.ProblemNote, error) {
	var notes []models.ProblemNote
	if err := DB.SelectContext(ctx, &notes, "SELECT * FROM problem_notes ORDER BY updated_at DESC"); err != nil {
		return nil, fmt.Errorf("failed to list notes: %v", err)
	}
	return notes, nil
}
