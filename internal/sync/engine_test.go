package sync

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OuchiGenki/comp-prog-trainer/pkg/models"
)

type fakeCatalog struct {
	mu           sync.Mutex
	fetches      int
	contestsErr  error
	fetchStarted chan struct{}
	fetchRelease chan struct{}
}

func (f *fakeCatalog) recordFetch() {
	f.mu.Lock()
	f.fetches++
	f.mu.Unlock()
}

func (f *fakeCatalog) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func (f *fakeCatalog) FetchProblems(ctx context.Context) ([]models.Problem, error) {
	f.recordFetch()
	if f.fetchStarted != nil {
		f.fetchStarted <- struct{}{}
		<-f.fetchRelease
	}
	return []models.Problem{{ID: "abc300_a", ContestID: "abc300"}}, nil
}

func (f *fakeCatalog) FetchProblemModels(ctx context.Context) ([]models.ProblemModel, error) {
	f.recordFetch()
	return []models.ProblemModel{{ProblemID: "abc300_a"}}, nil
}

func (f *fakeCatalog) FetchContests(ctx context.Context) ([]models.Contest, error) {
	f.recordFetch()
	if f.contestsErr != nil {
		return nil, f.contestsErr
	}
	return []models.Contest{{ID: "abc300"}}, nil
}

type fakeStore struct {
	mu       sync.Mutex
	replaces int
	count    int
}

func (s *fakeStore) ReplaceCatalog(ctx context.Context, problems []models.Problem, problemModels []models.ProblemModel, contests []models.Contest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaces++
	s.count = len(problems)
	return nil
}

func (s *fakeStore) CountProblems(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count, nil
}

type progressRecorder struct {
	mu     sync.Mutex
	stages []string
	pcts   []int
}

func (p *progressRecorder) record(stage string, percent int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stages = append(p.stages, stage)
	p.pcts = append(p.pcts, percent)
}

func TestSyncReportsProgressAndStampsTime(t *testing.T) {
	dir := t.TempDir()
	catalog := &fakeCatalog{}
	store := &fakeStore{}
	engine := NewEngine(catalog, store, dir)
	progress := &progressRecorder{}

	_, ok := engine.LastSyncTime()
	assert.False(t, ok)

	require.NoError(t, engine.Sync(context.Background(), progress.record, false))

	assert.Equal(t, []int{0, 33, 66, 90, 100}, progress.pcts)
	assert.Equal(t, []string{
		"Fetching problems",
		"Fetching difficulty models",
		"Fetching contests",
		"Saving to database",
		"Done",
	}, progress.stages)
	assert.Equal(t, 1, store.replaces)

	lastSync, ok := engine.LastSyncTime()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), lastSync, 5*time.Second)
}

func TestSyncFreshCacheShortCircuits(t *testing.T) {
	dir := t.TempDir()
	catalog := &fakeCatalog{}
	store := &fakeStore{count: 100}
	engine := NewEngine(catalog, store, dir)

	require.NoError(t, fileClock{dir: dir}.setLastSync(time.Now().Add(-time.Hour)))
	require.True(t, engine.CacheValid(context.Background()))

	progress := &progressRecorder{}
	require.NoError(t, engine.Sync(context.Background(), progress.record, false))

	// No network, no writes, no progress.
	assert.Zero(t, catalog.fetchCount())
	assert.Zero(t, store.replaces)
	assert.Empty(t, progress.stages)
}

func TestSyncForceBypassesFreshCache(t *testing.T) {
	dir := t.TempDir()
	catalog := &fakeCatalog{}
	store := &fakeStore{count: 100}
	engine := NewEngine(catalog, store, dir)

	require.NoError(t, fileClock{dir: dir}.setLastSync(time.Now().Add(-time.Hour)))

	require.NoError(t, engine.Sync(context.Background(), nil, true))
	assert.Equal(t, 3, catalog.fetchCount())
	assert.Equal(t, 1, store.replaces)
}

func TestSyncExpiredCacheRefetches(t *testing.T) {
	dir := t.TempDir()
	catalog := &fakeCatalog{}
	store := &fakeStore{count: 100}
	engine := NewEngine(catalog, store, dir)

	require.NoError(t, fileClock{dir: dir}.setLastSync(time.Now().Add(-25*time.Hour)))
	require.False(t, engine.CacheValid(context.Background()))

	require.NoError(t, engine.Sync(context.Background(), nil, false))
	assert.Equal(t, 1, store.replaces)
}

func TestCacheInvalidWhenStoreEmpty(t *testing.T) {
	dir := t.TempDir()
	engine := NewEngine(&fakeCatalog{}, &fakeStore{count: 0}, dir)

	// A fresh timestamp alone is not enough; the store must hold rows.
	require.NoError(t, fileClock{dir: dir}.setLastSync(time.Now()))
	assert.False(t, engine.CacheValid(context.Background()))
}

func TestSyncFetchFailureLeavesStoreAndTimestampAlone(t *testing.T) {
	dir := t.TempDir()
	catalog := &fakeCatalog{contestsErr: errors.New("upstream down")}
	store := &fakeStore{}
	engine := NewEngine(catalog, store, dir)

	err := engine.Sync(context.Background(), nil, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync contests")

	assert.Zero(t, store.replaces)
	_, ok := engine.LastSyncTime()
	assert.False(t, ok)
}

func TestConcurrentSyncsCollapse(t *testing.T) {
	dir := t.TempDir()
	catalog := &fakeCatalog{
		fetchStarted: make(chan struct{}),
		fetchRelease: make(chan struct{}),
	}
	store := &fakeStore{}
	engine := NewEngine(catalog, store, dir)

	errs := make(chan error, 2)
	go func() { errs <- engine.Sync(context.Background(), nil, true) }()

	// Wait until the first sync is mid-fetch, then pile on a second
	// caller. It must join the in-flight sync, not start another.
	<-catalog.fetchStarted
	go func() { errs <- engine.Sync(context.Background(), nil, true) }()
	time.Sleep(50 * time.Millisecond)
	close(catalog.fetchRelease)

	require.NoError(t, <-errs)
	require.NoError(t, <-errs)
	assert.Equal(t, 3, catalog.fetchCount())
	assert.Equal(t, 1, store.replaces)
}

func TestFileClockRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := fileClock{dir: dir}

	stamp := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, c.setLastSync(stamp))

	raw, err := os.ReadFile(filepath.Join(dir, lastSyncFile))
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(stamp.UnixMilli(), 10), string(raw))

	got, ok := c.lastSync()
	require.True(t, ok)
	assert.True(t, got.Equal(stamp))
}

func TestFileClockGarbageReadsAsNeverSynced(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, lastSyncFile), []byte("not a number"), 0644))

	_, ok := fileClock{dir: dir}.lastSync()
	assert.False(t, ok)
}
