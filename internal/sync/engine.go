// Package sync keeps the local catalog cache in step with the AtCoder
// Problems API using fetch-then-swap: the three datasets are downloaded
// in full before the store is touched, so a failed fetch leaves the old
// cache fully intact.
package sync

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/OuchiGenki/comp-prog-trainer/pkg/models"
)

// CacheDuration is the validity window after a successful sync during
// which a non-forced sync is a no-op.
const CacheDuration = 24 * time.Hour

// Catalog fetches the three upstream datasets.
type Catalog interface {
	FetchProblems(ctx context.Context) ([]models.Problem, error)
	FetchProblemModels(ctx context.Context) ([]models.ProblemModel, error)
	FetchContests(ctx context.Context) ([]models.Contest, error)
}

// CatalogStore is the slice of the store the engine writes to.
type CatalogStore interface {
	ReplaceCatalog(ctx context.Context, problems []models.Problem, problemModels []models.ProblemModel, contests []models.Contest) error
	CountProblems(ctx context.Context) (int, error)
}

// ProgressFunc receives a human-readable stage label and a 0-100
// percentage as the sync advances.
type ProgressFunc func(stage string, percent int)

// Engine orchestrates catalog synchronization.
type Engine struct {
	client Catalog
	store  CatalogStore
	clock  clock
	group  singleflight.Group
}

// NewEngine creates an engine persisting the last-sync timestamp under
// dataDir, outside the SQL store.
func NewEngine(client Catalog, store CatalogStore, dataDir string) *Engine {
	return &Engine{
		client: client,
		store:  store,
		clock:  fileClock{dir: dataDir},
	}
}

// LastSyncTime returns the persisted time of the last successful sync.
// A missing or unreadable timestamp reads as "never synced".
func (e *Engine) LastSyncTime() (time.Time, bool) {
	return e.clock.lastSync()
}

// CacheValid reports whether the cache can serve without a re-fetch:
// the last sync is inside the validity window and the store actually
// holds catalog rows.
func (e *Engine) CacheValid(ctx context.Context) bool {
	lastSync, ok := e.clock.lastSync()
	if !ok || time.Since(lastSync) >= CacheDuration {
		return false
	}
	count, err := e.store.CountProblems(ctx)
	return err == nil && count > 0
}

// Sync refreshes the local catalog cache. With force=false a valid
// cache short-circuits before any network call and progress is never
// reported. Concurrent calls collapse into a single flight; late
// callers wait for and share the first call's outcome.
func (e *Engine) Sync(ctx context.Context, progress ProgressFunc, force bool) error {
	_, err, _ := e.group.Do("sync", func() (interface{}, error) {
		return nil, e.sync(ctx, progress, force)
	})
	return err
}

func (e *Engine) sync(ctx context.Context, progress ProgressFunc, force bool) error {
	if !force && e.CacheValid(ctx) {
		return nil
	}

	report(progress, "Fetching problems", 0)
	problems, err := e.client.FetchProblems(ctx)
	if err != nil {
		return fmt.Errorf("sync problems: %w", err)
	}

	report(progress, "Fetching difficulty models", 33)
	problemModels, err := e.client.FetchProblemModels(ctx)
	if err != nil {
		return fmt.Errorf("sync problem models: %w", err)
	}

	report(progress, "Fetching contests", 66)
	contests, err := e.client.FetchContests(ctx)
	if err != nil {
		return fmt.Errorf("sync contests: %w", err)
	}

	report(progress, "Saving to database", 90)
	if err := e.store.ReplaceCatalog(ctx, problems, problemModels, contests); err != nil {
		return fmt.Errorf("sync save: %w", err)
	}

	if err := e.clock.setLastSync(time.Now()); err != nil {
		return fmt.Errorf("sync timestamp: %w", err)
	}

	report(progress, "Done", 100)
	return nil
}

func report(progress ProgressFunc, stage string, percent int) {
	if progress != nil {
		progress(stage, percent)
	}
}
