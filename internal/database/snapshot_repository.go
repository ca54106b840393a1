package database

import (
	"context"
	"fmt"
	"time"

	"github.com/OuchiGenki/comp-prog-trainer/pkg/models"
)

// SnapshotRepository bulk-exports and bulk-imports the user-owned
// collections (review cards, notes, bookmarks, review logs). The
// catalog tables are excluded; they are rebuilt by sync.
type SnapshotRepository struct{}

// NewSnapshotRepository creates a new repository instance
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{}
}

// Export reads the four user collections into a snapshot.
func (r *SnapshotRepository) Export(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{
		ReviewCards: []models.ReviewCard{},
		Notes:       []models.ProblemNote{},
		Bookmarks:   []models.Bookmark{},
		Logs:        []models.ReviewLog{},
		ExportedAt:  time.Now().Format(time.RFC3339),
	}

	if err := DB.SelectContext(ctx, &snap.ReviewCards, "SELECT * FROM review_cards"); err != nil {
		return nil, fmt.Errorf("failed to export review cards: %v", err)
	}
	if err := DB.SelectContext(ctx, &snap.Notes, "SELECT * FROM problem_notes"); err != nil {
		return nil, fmt.Errorf("failed to export notes: %v", err)
	}
	if err := DB.SelectContext(ctx, &snap.Bookmarks, "SELECT * FROM bookmarks"); err != nil {
		return nil, fmt.Errorf("failed to export bookmarks: %v", err)
	}
	if err := DB.SelectContext(ctx, &snap.Logs, "SELECT * FROM review_logs"); err != nil {
		return nil, fmt.Errorf("failed to export review logs: %v", err)
	}
	return snap, nil
}

// Import replaces each collection present in the snapshot inside one
// transaction. A nil slice means the key was absent from the payload
// and that collection is left untouched. Either every present
// collection is replaced or none is.
func (r *SnapshotRepository) Import(ctx context.Context, snap *models.Snapshot) error {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %v", err)
	}
	defer tx.Rollback()

	if snap.ReviewCards != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM review_cards"); err != nil {
			return fmt.Errorf("failed to clear review cards: %v", err)
		}
		if err := bulkInsert(ctx, tx, `
			INSERT INTO review_cards (problem_id, ease_factor, "interval", repetitions, next_review_date, last_reviewed_at, status)
			VALUES (:problem_id, :ease_factor, :interval, :repetitions, :next_review_date, :last_reviewed_at, :status)`,
			snap.ReviewCards); err != nil {
			return fmt.Errorf("failed to import review cards: %v", err)
		}
	}

	if snap.Notes != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM problem_notes"); err != nil {
			return fmt.Errorf("failed to clear notes: %v", err)
		}
		if err := bulkInsert(ctx, tx, `
			INSERT INTO problem_notes (problem_id, content, updated_at)
			VALUES (:problem_id, :content, :updated_at)`,
			snap.Notes); err != nil {
			return fmt.Errorf("failed to import notes: %v", err)
		}
	}

	if snap.Bookmarks != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM bookmarks"); err != nil {
			return fmt.Errorf("failed to clear bookmarks: %v", err)
		}
		if err := bulkInsert(ctx, tx, `
			INSERT INTO bookmarks (problem_id, created_at)
			VALUES (:problem_id, :created_at)`,
			snap.Bookmarks); err != nil {
			return fmt.Errorf("failed to import bookmarks: %v", err)
		}
	}

	if snap.Logs != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM review_logs"); err != nil {
			return fmt.Errorf("failed to clear review logs: %v", err)
		}
		if err := bulkInsert(ctx, tx, `
			INSERT INTO review_logs (problem_id, reviewed_at, quality)
			VALUES (:problem_id, :reviewed_at, :quality)`,
			snap.Logs); err != nil {
			return fmt.Errorf("failed to import review logs: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import transaction: %v", err)
	}
	return nil
}

// ClearUserData removes all four user collections in one transaction.
func (r *SnapshotRepository) ClearUserData(ctx context.Context) error {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin clear transaction: %v", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"review_cards", "problem_notes", "bookmarks", "review_logs"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %v", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear transaction: %v", err)
	}
	return nil
}
