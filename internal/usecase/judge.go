package usecase

import (
	"github.com/agext/levenshtein"

	"github.com/eslsoft/studyengine/internal/entity"
)

// IsCorrectExact compares response and expected after trimming whitespace and
// folding ASCII case.
func IsCorrectExact(response, expected string) bool {
	return entity.NormalizeAnswer(response) == entity.NormalizeAnswer(expected)
}

// IsCorrectFuzzy accepts response when its edit distance to expected is
// within FuzzyTolerance(expected). Both sides are normalised first.
func IsCorrectFuzzy(response, expected string) bool {
	want := entity.NormalizeAnswer(expected)
	return EditDistance(entity.NormalizeAnswer(response), want) <= FuzzyTolerance(want)
}

// FuzzyTolerance allows one edit per ten characters of the normalised
// expected answer, and never less than one.
func FuzzyTolerance(expected string) int {
	n := len([]rune(entity.NormalizeAnswer(expected)))
	return max(1, n/10)
}

// EditDistance is the Levenshtein distance between a and b, counted in runes.
func EditDistance(a, b string) int {
	return levenshtein.Distance(a, b, nil)
}
