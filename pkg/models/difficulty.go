package models

import "strings"

// AtCoder difficulty color bands, lowest bound first.
var difficultyBands = []struct {
	min   int
	label string
}{
	{2800, "Red"},
	{2400, "Orange"},
	{2000, "Yellow"},
	{1600, "Blue"},
	{1200, "Cyan"},
	{800, "Green"},
	{400, "Brown"},
	{0, "Gray"},
}

// DifficultyLabel maps a difficulty estimate to its AtCoder color band.
// A nil difficulty is "Unrated".
func DifficultyLabel(difficulty *int) string {
	if difficulty == nil {
		return "Unrated"
	}
	for _, band := range difficultyBands {
		if *difficulty >= band.min {
			return band.label
		}
	}
	return "Gray" // negative estimates happen for the easiest problems
}

// ContestCategory classifies a contest by its id prefix.
func ContestCategory(contestID string) string {
	switch {
	case strings.HasPrefix(contestID, "abc"):
		return "ABC"
	case strings.HasPrefix(contestID, "arc"):
		return "ARC"
	case strings.HasPrefix(contestID, "agc"):
		return "AGC"
	default:
		return "Other"
	}
}
