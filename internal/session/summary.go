package session

import (
	"time"

	"github.com/abhisek/adaptutor/internal/questionbank"
)

// Recommendation is a concept the learner should focus on next.
type Recommendation struct {
	Concept      string
	Mastery      float64
	ResourceURLs []string
}

// Recommendations lists concepts whose mastery is strictly below the
// session's focus threshold, weakest first. Equal masteries keep bank
// concept order. Each carries the concept's distinct resource links.
func Recommendations(bank *questionbank.Bank, st *State) []Recommendation {
	var recs []Recommendation
	for _, e := range st.Mastery.Ascending() {
		if e.Mastery >= st.FocusThreshold {
			continue
		}
		recs = append(recs, Recommendation{
			Concept:      e.Concept,
			Mastery:      e.Mastery,
			ResourceURLs: bank.ResourceLinks(e.Concept),
		})
	}
	return recs
}

// HistoryEntry is an answer joined with the question it answered.
type HistoryEntry struct {
	AnswerEvent
	Difficulty int
	Question   string
}

// HistoryView returns the answer history in order, enriched with each
// question's concept and difficulty from the bank.
func HistoryView(bank *questionbank.Bank, st *State) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(st.History))
	for _, ev := range st.History {
		entry := HistoryEntry{AnswerEvent: ev}
		if q, ok := bank.Question(ev.QuestionID); ok {
			entry.Concept = q.Concept
			entry.Difficulty = q.Difficulty
			entry.Question = q.Text
		}
		out = append(out, entry)
	}
	return out
}

// ConceptResult is per-concept performance within a session.
type ConceptResult struct {
	Concept   string
	Attempted int
	Correct   int
	Mastery   float64
}

// Summary holds the data displayed when a session ends.
type Summary struct {
	Duration time.Duration
	Answered int
	Correct  int
	Skipped  int
	Accuracy float64
	Concepts []ConceptResult
}

// BuildSummary creates a Summary from the session state. Concepts appear in
// bank order.
func BuildSummary(st *State) *Summary {
	byConcept := make(map[string]*ConceptResult)
	var results []*ConceptResult
	for _, e := range st.Mastery.Entries() {
		cr := &ConceptResult{Concept: e.Concept, Mastery: e.Mastery}
		byConcept[e.Concept] = cr
		results = append(results, cr)
	}

	correct := 0
	for _, ev := range st.History {
		if ev.Correct {
			correct++
		}
		if cr, ok := byConcept[ev.Concept]; ok {
			cr.Attempted++
			if ev.Correct {
				cr.Correct++
			}
		}
	}

	var accuracy float64
	if len(st.History) > 0 {
		accuracy = float64(correct) / float64(len(st.History))
	}

	concepts := make([]ConceptResult, 0, len(results))
	for _, cr := range results {
		concepts = append(concepts, *cr)
	}

	return &Summary{
		Duration: time.Since(st.StartedAt),
		Answered: len(st.History),
		Correct:  correct,
		Skipped:  st.Skipped,
		Accuracy: accuracy,
		Concepts: concepts,
	}
}
