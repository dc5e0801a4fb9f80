package questionbank

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	errMissing    = errors.New("missing value")
	errNotInteger = errors.New("not a positive integer")
	errBadKey     = errors.New("must be one of a, b, c, d")
)

// sanitize turns a raw row into a Question, defaulting concept and
// difficulty and rejecting rows without the fields a question needs.
func sanitize(row Row) (Question, *RowError) {
	fail := func(field string, err error) (Question, *RowError) {
		return Question{}, &RowError{Line: row.Line, ID: strings.TrimSpace(row.ID), Field: field, Err: err}
	}

	id, err := parseID(row.ID)
	if err != nil {
		return fail("id", err)
	}

	text := strings.TrimSpace(row.Question)
	if text == "" {
		return fail("question", errMissing)
	}

	options := [4]string{
		strings.TrimSpace(row.OptionA),
		strings.TrimSpace(row.OptionB),
		strings.TrimSpace(row.OptionC),
		strings.TrimSpace(row.OptionD),
	}
	for i, opt := range options {
		if opt == "" {
			return fail("option_"+OptionKeys[i], errMissing)
		}
	}

	if strings.TrimSpace(row.Correct) == "" {
		return fail("correct", errMissing)
	}
	key, ok := NormalizeKey(row.Correct)
	if !ok {
		return fail("correct", errBadKey)
	}

	concept := strings.TrimSpace(row.Concept)
	if concept == "" {
		concept = DefaultConcept
	}

	return Question{
		ID:          id,
		Concept:     concept,
		Difficulty:  parseDifficulty(row.Difficulty),
		Text:        text,
		Options:     options,
		Correct:     key,
		Explanation: strings.TrimSpace(row.Explanation),
		ResourceURL: strings.TrimSpace(row.ResourceURL),
	}, nil
}

func parseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errMissing
	}
	n, ok := parseWholeNumber(s)
	if !ok || n <= 0 {
		return 0, errNotInteger
	}
	return n, nil
}

// parseDifficulty coerces a difficulty cell, falling back to MinDifficulty
// and clamping into [MinDifficulty, MaxDifficulty].
func parseDifficulty(s string) int {
	n, ok := parseWholeNumber(strings.TrimSpace(s))
	if !ok {
		return MinDifficulty
	}
	return clampDifficulty(n)
}

func clampDifficulty(n int) int {
	if n < MinDifficulty {
		return MinDifficulty
	}
	if n > MaxDifficulty {
		return MaxDifficulty
	}
	return n
}

// parseWholeNumber accepts "3" as well as spreadsheet-style "3.0".
// Fractional values are truncated toward zero.
func parseWholeNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
