package questionbank

import (
	"fmt"
	"strings"
)

// DefaultConcept is assigned to rows that carry no concept.
const DefaultConcept = "General"

// Difficulty bounds. Missing or unparseable difficulties become MinDifficulty.
const (
	MinDifficulty = 1
	MaxDifficulty = 4
)

// OptionKeys lists the answer keys in display order.
var OptionKeys = [4]string{"a", "b", "c", "d"}

// Question is a single sanitized multiple-choice question.
type Question struct {
	ID          int
	Concept     string
	Difficulty  int
	Text        string
	Options     [4]string
	Correct     string // lower-case option key
	Explanation string
	ResourceURL string
}

// Option returns the option text for an answer key.
func (q Question) Option(key string) (string, bool) {
	k, ok := NormalizeKey(key)
	if !ok {
		return "", false
	}
	return q.Options[KeyIndex(k)], true
}

// CorrectIndex returns the index of the correct option (0-3).
func (q Question) CorrectIndex() int {
	return KeyIndex(q.Correct)
}

// HasResourceLink reports whether ResourceURL is usable as a clickable link.
func (q Question) HasResourceLink() bool {
	return strings.HasPrefix(q.ResourceURL, "http")
}

// IsCorrect compares a learner answer against the answer key.
// Returns false for anything that is not a recognizable key.
func (q Question) IsCorrect(answer string) bool {
	key, ok := NormalizeKey(answer)
	return ok && key == q.Correct
}

// NormalizeKey trims and lower-cases an answer key and reports whether it is
// one of a, b, c or d.
func NormalizeKey(s string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if KeyIndex(key) < 0 {
		return "", false
	}
	return key, true
}

// KeyIndex maps a normalized key to its option index, or -1.
func KeyIndex(key string) int {
	for i, k := range OptionKeys {
		if k == key {
			return i
		}
	}
	return -1
}

// Row is one raw record from a bank source, before sanitization.
// All fields are kept as strings so every source shares one sanitizer.
type Row struct {
	Line        int    `yaml:"-"`
	ID          string `yaml:"id"`
	Concept     string `yaml:"concept"`
	Difficulty  string `yaml:"difficulty"`
	Question    string `yaml:"question"`
	OptionA     string `yaml:"option_a"`
	OptionB     string `yaml:"option_b"`
	OptionC     string `yaml:"option_c"`
	OptionD     string `yaml:"option_d"`
	Correct     string `yaml:"correct"`
	Explanation string `yaml:"explanation"`
	ResourceURL string `yaml:"resource_url"`
}

// RowError describes a bank row that was rejected during sanitization.
type RowError struct {
	Line  int
	ID    string
	Field string
	Err   error
}

func (e *RowError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("row %d (id %s): %s: %v", e.Line, e.ID, e.Field, e.Err)
	}
	return fmt.Sprintf("row %d: %s: %v", e.Line, e.Field, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
