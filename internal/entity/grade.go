package entity

import (
	"encoding"
	"fmt"
	"strconv"
	"strings"
)

// Grade is the learner's self-reported recall quality.
type Grade int

const (
	GradeAgain Grade = iota // Failed to recall.
	GradeHard               // Recalled with significant effort.
	GradeGood               // Recalled with some hesitation.
	GradeEasy               // Recalled effortlessly.
)

var (
	gradeNames  = [...]string{GradeAgain: "again", GradeHard: "hard", GradeGood: "good", GradeEasy: "easy"}
	gradeByName = map[string]Grade{
		"again": GradeAgain,
		"hard":  GradeHard,
		"good":  GradeGood,
		"easy":  GradeEasy,
	}
)

var (
	_ fmt.Stringer             = Grade(0)
	_ encoding.TextMarshaler   = Grade(0)
	_ encoding.TextUnmarshaler = (*Grade)(nil)
)

// IsValid reports whether g is one of again, hard, good or easy.
func (g Grade) IsValid() bool {
	return g >= GradeAgain && g <= GradeEasy
}

// Clamp forces g into the again..easy range.
func (g Grade) Clamp() Grade {
	switch {
	case g < GradeAgain:
		return GradeAgain
	case g > GradeEasy:
		return GradeEasy
	default:
		return g
	}
}

// String returns the lowercase grade name, or "Grade(n)" for invalid values.
func (g Grade) String() string {
	if g.IsValid() {
		return gradeNames[g]
	}
	return fmt.Sprintf("Grade(%d)", int(g))
}

// MarshalText implements encoding.TextMarshaler.
func (g Grade) MarshalText() ([]byte, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGrade, int(g))
	}
	return []byte(gradeNames[g]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Grade) UnmarshalText(text []byte) error {
	parsed, err := ParseGrade(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ParseGrade accepts a grade name ("again", "Hard", ...) or its number 0-3.
func ParseGrade(s string) (Grade, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if g, ok := gradeByName[key]; ok {
		return g, nil
	}
	if n, err := strconv.Atoi(key); err == nil && Grade(n).IsValid() {
		return Grade(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidGrade, s)
}
