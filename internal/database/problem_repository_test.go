package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OuchiGenki/comp-prog-trainer/pkg/models"
)

func intPtr(v int) *int { return &v }

func seedCatalog(t *testing.T, repo *ProblemRepository) {
	t.Helper()
	problems := []models.Problem{
		{ID: "abc300_a", ContestID: "abc300", ProblemIndex: "A", Name: "N-choice question", Title: "A. N-choice question"},
		{ID: "abc300_b", ContestID: "abc300", ProblemIndex: "B", Name: "Same Map in the RPG World", Title: "B. Same Map in the RPG World"},
		{ID: "agc001_a", ContestID: "agc001", ProblemIndex: "A", Name: "BBQ Easy", Title: "A. BBQ Easy"},
	}
	problemModels := []models.ProblemModel{
		{ProblemID: "abc300_a", Difficulty: intPtr(-500)},
		{ProblemID: "abc300_b", Difficulty: intPtr(350), IsExperimental: true},
		{ProblemID: "agc001_a", Difficulty: intPtr(1200)},
	}
	contests := []models.Contest{
		{ID: "abc300", StartEpochSecond: 1682762400, DurationSecond: 6000, Title: "AtCoder Beginner Contest 300", RateChange: " ~ 1999"},
		{ID: "agc001", StartEpochSecond: 1468670400, DurationSecond: 7700, Title: "AtCoder Grand Contest 001", RateChange: "All"},
	}
	require.NoError(t, repo.ReplaceCatalog(context.Background(), problems, problemModels, contests))
}

func TestReplaceCatalogSwapsWholesale(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewProblemRepository()
	seedCatalog(t, repo)

	count, err := repo.CountProblems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// A second sync fully replaces the previous catalog.
	replacement := []models.Problem{
		{ID: "arc100_c", ContestID: "arc100", ProblemIndex: "C", Name: "Linear Approximation", Title: "C. Linear Approximation"},
	}
	require.NoError(t, repo.ReplaceCatalog(ctx, replacement, nil, nil))

	count, err = repo.CountProblems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = repo.GetByID(ctx, "abc300_a")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetContest(ctx, "abc300")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByIDAndModel(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewProblemRepository()
	seedCatalog(t, repo)

	problem, err := repo.GetByID(ctx, "agc001_a")
	require.NoError(t, err)
	assert.Equal(t, "agc001", problem.ContestID)

	model, err := repo.GetModel(ctx, "agc001_a")
	require.NoError(t, err)
	require.NotNil(t, model.Difficulty)
	assert.Equal(t, 1200, *model.Difficulty)
	assert.True(t, model.Rated())

	// Experimental estimates never count as rated.
	model, err = repo.GetModel(ctx, "abc300_b")
	require.NoError(t, err)
	assert.False(t, model.Rated())
}

func TestListDetailedJoins(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewProblemRepository()
	seedCatalog(t, repo)

	annotations := NewAnnotationRepository()
	_, err := annotations.ToggleBookmark(ctx, "abc300_a")
	require.NoError(t, err)

	rows, err := repo.ListDetailed(ctx, ProblemQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byID := make(map[string]models.ProblemWithDetails, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	assert.Equal(t, "AtCoder Beginner Contest 300", byID["abc300_a"].ContestTitle)
	assert.True(t, byID["abc300_a"].IsBookmarked)
	assert.False(t, byID["agc001_a"].IsBookmarked)
	assert.True(t, byID["abc300_b"].IsExperimental)
	require.NotNil(t, byID["agc001_a"].Difficulty)
	assert.Equal(t, 1200, *byID["agc001_a"].Difficulty)
}

func TestListDetailedFilters(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewProblemRepository()
	seedCatalog(t, repo)

	rows, err := repo.ListDetailed(ctx, ProblemQuery{Search: "bbq"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "agc001_a", rows[0].ID)

	// The difficulty range excludes experimental estimates entirely.
	rows, err = repo.ListDetailed(ctx, ProblemQuery{MinDifficulty: intPtr(0), MaxDifficulty: intPtr(2000)})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "agc001_a", rows[0].ID)

	rows, err = repo.ListDetailed(ctx, ProblemQuery{Category: "ABC"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = repo.ListDetailed(ctx, ProblemQuery{OnlyBookmarked: true})
	require.NoError(t, err)
	assert.Empty(t, rows)

	annotations := NewAnnotationRepository()
	_, err = annotations.ToggleBookmark(ctx, "agc001_a")
	require.NoError(t, err)

	rows, err = repo.ListDetailed(ctx, ProblemQuery{OnlyBookmarked: true})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "agc001_a", rows[0].ID)
}
