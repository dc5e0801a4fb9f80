package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/adaptutor/internal/mastery"
	"github.com/abhisek/adaptutor/internal/questionbank"
)

// DefaultFocusThreshold is the mastery below which a concept is
// recommended for more practice.
const DefaultFocusThreshold = 0.6

// AnswerEvent records one submitted answer. Events are appended and never
// changed.
type AnswerEvent struct {
	QuestionID int
	Concept    string
	Answer     string // normalized answer key
	Correct    bool
	Mastery    float64 // concept mastery after the update
	AnsweredAt time.Time
}

// State is one learner's session: everything the tutoring loop mutates.
// Each learner owns their State; the Bank it refers to is shared.
type State struct {
	// ID identifies the session in the history log.
	ID string

	// Params are the BKT parameters, fixed for the session.
	Params mastery.Params

	// FocusThreshold is the mastery below which a concept is recommended.
	FocusThreshold float64

	// Mastery holds one entry per bank concept.
	Mastery *mastery.Map

	// Asked is the set of question IDs answered or skipped.
	Asked map[int]bool

	// History is every submitted answer in order.
	History []AnswerEvent

	// Current is the question on screen, nil before start and after exhaustion.
	Current *questionbank.Question

	// Skipped counts skipped questions since the last reset.
	Skipped int

	// StartedAt is when the session was created.
	StartedAt time.Time
}

// New creates a fresh session for bank with every concept at params.PInit.
func New(bank *questionbank.Bank, params mastery.Params) *State {
	st := &State{
		ID:             uuid.New().String(),
		Params:         params,
		FocusThreshold: DefaultFocusThreshold,
		StartedAt:      time.Now(),
	}
	Reset(bank, st)
	return st
}

// Reset returns the session to its starting point: initial mastery for every
// concept, nothing asked, empty history, no current question. Calling it
// repeatedly has the same effect as calling it once.
func Reset(bank *questionbank.Bank, st *State) {
	st.Mastery = mastery.NewMap(bank.Concepts(), st.Params.PInit)
	st.Asked = make(map[int]bool)
	st.History = nil
	st.Current = nil
	st.Skipped = 0
}

// Exhausted reports whether every question in bank has been asked.
func (st *State) Exhausted(bank *questionbank.Bank) bool {
	for _, q := range bank.Questions() {
		if !st.Asked[q.ID] {
			return false
		}
	}
	return true
}

// Correct returns the number of correct answers in the history.
func (st *State) Correct() int {
	n := 0
	for _, ev := range st.History {
		if ev.Correct {
			n++
		}
	}
	return n
}
