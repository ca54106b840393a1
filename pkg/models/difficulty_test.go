package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficultyLabel(t *testing.T) {
	tests := []struct {
		name       string
		difficulty *int
		want       string
	}{
		{"nil is unrated", nil, "Unrated"},
		{"negative estimate", ptr(-455), "Gray"},
		{"zero", ptr(0), "Gray"},
		{"brown lower bound", ptr(400), "Brown"},
		{"green", ptr(1199), "Green"},
		{"cyan lower bound", ptr(1200), "Cyan"},
		{"blue", ptr(1999), "Blue"},
		{"yellow lower bound", ptr(2000), "Yellow"},
		{"orange", ptr(2799), "Orange"},
		{"red lower bound", ptr(2800), "Red"},
		{"far past red", ptr(4200), "Red"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DifficultyLabel(tt.difficulty))
		})
	}
}

func TestContestCategory(t *testing.T) {
	assert.Equal(t, "ABC", ContestCategory("abc300"))
	assert.Equal(t, "ARC", ContestCategory("arc100"))
	assert.Equal(t, "AGC", ContestCategory("agc001"))
	assert.Equal(t, "Other", ContestCategory("ahc030"))
	assert.Equal(t, "Other", ContestCategory("code-festival-2016"))
}

func TestRated(t *testing.T) {
	var missing *ProblemModel
	assert.False(t, missing.Rated())
	assert.False(t, (&ProblemModel{}).Rated())
	assert.False(t, (&ProblemModel{Difficulty: ptr(1200), IsExperimental: true}).Rated())
	assert.True(t, (&ProblemModel{Difficulty: ptr(1200)}).Rated())
}

func ptr(v int) *int { return &v }
