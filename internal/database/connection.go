package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// DataDir returns the directory holding local application state. The
// last-sync timestamp file lives here as well, outside the database.
func DataDir() string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir
	}
	return "data"
}

// Connect establishes a connection to the database. Postgres is used
// when DATABASE_URL is set; otherwise a local SQLite file under the
// data directory.
func Connect() error {
	var (
		db  *sqlx.DB
		err error
	)
	if url := os.Getenv("DATABASE_URL"); url != "" {
		db, err = sqlx.Connect("postgres", url)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
	} else {
		dataDir := DataDir()
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}

		dbPath := filepath.Join(dataDir, "trainer.db")
		db, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}

		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	logIDColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if DB.DriverName() == "postgres" {
		logIDColumn = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS problems (
			id TEXT PRIMARY KEY,
			contest_id TEXT NOT NULL,
			problem_index TEXT NOT NULL,
			name TEXT NOT NULL,
			title TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_problems_contest_id ON problems(contest_id)`,
		`CREATE INDEX IF NOT EXISTS idx_problems_problem_index ON problems(problem_index)`,
		`CREATE INDEX IF NOT EXISTS idx_problems_name ON problems(name)`,

		`CREATE TABLE IF NOT EXISTS problem_models (
			problem_id TEXT PRIMARY KEY,
			slope REAL,
			intercept REAL,
			variance REAL,
			difficulty INTEGER,
			discrimination REAL,
			is_experimental BOOLEAN NOT NULL DEFAULT false,
			raw_point REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_problem_models_difficulty ON problem_models(difficulty)`,

		`CREATE TABLE IF NOT EXISTS contests (
			id TEXT PRIMARY KEY,
			start_epoch_second BIGINT NOT NULL,
			duration_second BIGINT NOT NULL,
			title TEXT NOT NULL,
			rate_change TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contests_start_epoch_second ON contests(start_epoch_second)`,

		`CREATE TABLE IF NOT EXISTS review_cards (
			problem_id TEXT PRIMARY KEY,
			ease_factor REAL NOT NULL,
			"interval" INTEGER NOT NULL,
			repetitions INTEGER NOT NULL,
			next_review_date TEXT NOT NULL,
			last_reviewed_at TEXT,
			status TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_review_cards_next_review_date ON review_cards(next_review_date)`,
		`CREATE INDEX IF NOT EXISTS idx_review_cards_status ON review_cards(status)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS review_logs (
			id %s,
			problem_id TEXT NOT NULL,
			reviewed_at TEXT NOT NULL,
			quality INTEGER NOT NULL
		)`, logIDColumn),
		`CREATE INDEX IF NOT EXISTS idx_review_logs_problem_id ON review_logs(problem_id)`,
		`CREATE INDEX IF NOT EXISTS idx_review_logs_reviewed_at ON review_logs(reviewed_at)`,

		`CREATE TABLE IF NOT EXISTS bookmarks (
			problem_id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS problem_notes (
			problem_id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}

	return nil
}
