package questionbank

import (
	"errors"
	"fmt"
)

// ErrEmptyBank is returned when no row survives sanitization.
var ErrEmptyBank = errors.New("question bank has no usable questions")

// Bank is an immutable, ordered set of questions.
// It is never mutated after New returns, so a single Bank may be shared by
// any number of sessions.
type Bank struct {
	questions []Question
	byID      map[int]int
	concepts  []string
	byConcept map[string][]int
	rejected  []*RowError
}

// New sanitizes rows into a Bank. Rows that cannot be repaired are skipped
// and reported by Rejected. The error is non-nil only when nothing usable
// remains; it then wraps ErrEmptyBank together with the row errors.
func New(rows []Row) (*Bank, error) {
	b := &Bank{
		byID:      make(map[int]int, len(rows)),
		byConcept: make(map[string][]int),
	}

	for i, row := range rows {
		if row.Line == 0 {
			row.Line = i + 1
		}
		q, rerr := sanitize(row)
		if rerr == nil {
			if _, dup := b.byID[q.ID]; dup {
				rerr = &RowError{Line: row.Line, ID: row.ID, Field: "id", Err: errors.New("duplicate id")}
			}
		}
		if rerr != nil {
			b.rejected = append(b.rejected, rerr)
			continue
		}
		b.add(q)
	}

	if len(b.questions) == 0 {
		errs := []error{ErrEmptyBank}
		for _, re := range b.rejected {
			errs = append(errs, re)
		}
		return nil, errors.Join(errs...)
	}
	return b, nil
}

func (b *Bank) add(q Question) {
	idx := len(b.questions)
	b.questions = append(b.questions, q)
	b.byID[q.ID] = idx
	if _, seen := b.byConcept[q.Concept]; !seen {
		b.concepts = append(b.concepts, q.Concept)
	}
	b.byConcept[q.Concept] = append(b.byConcept[q.Concept], idx)
}

// Len returns the number of questions.
func (b *Bank) Len() int { return len(b.questions) }

// Questions returns all questions in bank (insertion) order.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Question looks up a question by id.
func (b *Bank) Question(id int) (Question, bool) {
	idx, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[idx], true
}

// Concepts returns the distinct concepts in order of first appearance.
func (b *Bank) Concepts() []string {
	out := make([]string, len(b.concepts))
	copy(out, b.concepts)
	return out
}

// ByConcept returns the questions of a concept in bank order.
func (b *Bank) ByConcept(concept string) []Question {
	idxs := b.byConcept[concept]
	out := make([]Question, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, b.questions[idx])
	}
	return out
}

// ResourceLinks returns the distinct http(s) resource links of a concept,
// in bank order.
func (b *Bank) ResourceLinks(concept string) []string {
	var links []string
	seen := make(map[string]bool)
	for _, idx := range b.byConcept[concept] {
		q := b.questions[idx]
		if !q.HasResourceLink() || seen[q.ResourceURL] {
			continue
		}
		seen[q.ResourceURL] = true
		links = append(links, q.ResourceURL)
	}
	return links
}

// Rejected returns the rows dropped during sanitization.
func (b *Bank) Rejected() []*RowError {
	return b.rejected
}

// RejectedErr joins the rejected rows into one error, or returns nil.
func (b *Bank) RejectedErr() error {
	if len(b.rejected) == 0 {
		return nil
	}
	errs := make([]error, 0, len(b.rejected))
	for _, re := range b.rejected {
		errs = append(errs, re)
	}
	return fmt.Errorf("%d rejected rows: %w", len(b.rejected), errors.Join(errs...))
}
