package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/adaptutor/internal/questionbank"
)

// Submission errors. The session is left untouched when any is returned.
var (
	ErrNoCurrentQuestion = errors.New("no question is being asked")
	ErrQuestionMismatch  = errors.New("answer is for a different question")
	ErrInvalidAnswerKey  = errors.New("answer must be one of a, b, c, d")
	ErrAlreadyAnswered   = errors.New("question has already been answered")
)

// Result is the outcome of a submitted answer.
type Result struct {
	QuestionID  int
	Concept     string
	Correct     bool
	Answer      string
	CorrectKey  string
	Prior       float64
	Mastery     float64
	Explanation string
	ResourceURL string // empty unless the question has an http(s) link
}

// Next asks the selection policy for a question and makes it current.
// It returns nil, and clears Current, when the bank is exhausted.
// Starting a session is the same operation.
func Next(bank *questionbank.Bank, st *State) *questionbank.Question {
	st.Current = PickNext(bank, st.Mastery, st.Asked)
	return st.Current
}

// Submit grades answerKey against the current question, records the answer
// and updates the concept's mastery. The current question stays in place;
// callers advance explicitly with Next.
func Submit(bank *questionbank.Bank, st *State, questionID int, answerKey string) (Result, error) {
	q, err := currentQuestion(bank, st, questionID)
	if err != nil {
		return Result{}, err
	}

	if st.Asked[q.ID] {
		return Result{}, fmt.Errorf("%w: question %d", ErrAlreadyAnswered, q.ID)
	}

	key, ok := questionbank.NormalizeKey(answerKey)
	if !ok {
		return Result{}, fmt.Errorf("%w: got %q", ErrInvalidAnswerKey, answerKey)
	}
	correct := q.IsCorrect(key)

	prior, ok := st.Mastery.Get(q.Concept)
	if !ok {
		prior = st.Params.PInit
	}
	posterior := st.Params.Update(prior, correct)
	st.Mastery.Set(q.Concept, posterior)

	st.Asked[q.ID] = true
	st.History = append(st.History, AnswerEvent{
		QuestionID: q.ID,
		Concept:    q.Concept,
		Answer:     key,
		Correct:    correct,
		Mastery:    posterior,
		AnsweredAt: time.Now(),
	})

	res := Result{
		QuestionID:  q.ID,
		Concept:     q.Concept,
		Correct:     correct,
		Answer:      key,
		CorrectKey:  q.Correct,
		Prior:       prior,
		Mastery:     posterior,
		Explanation: q.Explanation,
	}
	if q.HasResourceLink() {
		res.ResourceURL = q.ResourceURL
	}
	return res, nil
}

// Skip marks the current question as asked without grading it and moves on
// to the next question, which may be nil. Skipping an already answered
// question just advances.
func Skip(bank *questionbank.Bank, st *State, questionID int) (*questionbank.Question, error) {
	q, err := currentQuestion(bank, st, questionID)
	if err != nil {
		return nil, err
	}
	if !st.Asked[q.ID] {
		st.Asked[q.ID] = true
		st.Skipped++
	}
	return Next(bank, st), nil
}

// currentQuestion resolves questionID against the session's current
// question and the bank.
func currentQuestion(bank *questionbank.Bank, st *State, questionID int) (questionbank.Question, error) {
	if st.Current == nil {
		return questionbank.Question{}, ErrNoCurrentQuestion
	}
	if st.Current.ID != questionID {
		return questionbank.Question{}, fmt.Errorf("%w: current is %d, got %d", ErrQuestionMismatch, st.Current.ID, questionID)
	}
	q, ok := bank.Question(questionID)
	if !ok {
		return questionbank.Question{}, fmt.Errorf("%w: question %d is not in the bank", ErrQuestionMismatch, questionID)
	}
	return q, nil
}
