package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestDB points the global connection at a throwaway SQLite file.
func setupTestDB(t *testing.T) {
	t.Helper()
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("DATABASE_URL", "")
	require.NoError(t, Connect())
	t.Cleanup(func() { Close() })
}
