package sync

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// lastSyncFile holds the epoch milliseconds of the last successful
// sync, stored as plain text next to the database rather than in it.
const lastSyncFile = "last_sync"

type clock interface {
	lastSync() (time.Time, bool)
	setLastSync(t time.Time) error
}

// fileClock persists the last-sync timestamp as a file under the data
// directory. Read failures of any kind mean "no cached timestamp".
type fileClock struct {
	dir string
}

func (c fileClock) path() string {
	return filepath.Join(c.dir, lastSyncFile)
}

func (c fileClock) lastSync() (time.Time, bool) {
	raw, err := os.ReadFile(c.path())
	if err != nil {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

func (c fileClock) setLastSync(t time.Time) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(c.path(), []byte(strconv.FormatInt(t.UnixMilli(), 10)), 0644)
}
