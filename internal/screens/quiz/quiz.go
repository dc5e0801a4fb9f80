package quiz

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/adaptutor/internal/questionbank"
	"github.com/abhisek/adaptutor/internal/router"
	"github.com/abhisek/adaptutor/internal/screen"
	"github.com/abhisek/adaptutor/internal/screens/focus"
	"github.com/abhisek/adaptutor/internal/screens/history"
	sess "github.com/abhisek/adaptutor/internal/session"
	"github.com/abhisek/adaptutor/internal/ui/components"
	"github.com/abhisek/adaptutor/internal/ui/layout"
)

// QuizScreen implements screen.Screen for the tutoring loop.
type QuizScreen struct {
	bank        *questionbank.Bank
	state       *sess.State
	logger      *zap.Logger
	choice      components.MultiChoice
	input       components.TextInput
	typing      bool // typed-answer mode instead of the option cursor
	result      *sess.Result
	confirmQuit bool
	notice      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen over an existing session.
func New(bank *questionbank.Bank, state *sess.State, logger *zap.Logger) *QuizScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizScreen{
		bank:   bank,
		state:  state,
		logger: logger,
		input:  components.NewTextInput("a, b, c or d", true, 4),
	}
}

// Init starts the session if no question is current yet.
func (s *QuizScreen) Init() tea.Cmd {
	if s.state.Current == nil {
		s.advance()
	} else {
		s.load(s.state.Current)
	}
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) Status() string {
	return fmt.Sprintf("%d/%d correct", s.state.Correct(), len(s.state.History))
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.state.Current == nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Summary"},
			{Key: "R", Description: "Reset"},
			{Key: "F", Description: "Focus"},
		}
	case s.typing && s.result == nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Options"},
		}
	case s.result != nil:
		return []layout.KeyHint{
			{Key: "N", Description: "Next"},
			{Key: "F", Description: "Focus"},
			{Key: "H", Description: "History"},
			{Key: "R", Description: "Reset"},
			{Key: "Esc", Description: "End"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "S", Description: "Skip"},
		{Key: "T", Description: "Type"},
		{Key: "F", Description: "Focus"},
		{Key: "H", Description: "History"},
		{Key: "Esc", Description: "End"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		return s.handleKey(kmsg)
	}

	if s.typing && s.result == nil {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, s.endSession()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	// Typed answers take every key except submit and leave.
	if s.typing && s.result == nil && s.state.Current != nil {
		switch key {
		case "enter":
			return s.submit(s.input.Value())
		case "esc":
			s.typing = false
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch key {
	case "esc":
		if s.state.Current == nil {
			return s, s.endSession()
		}
		s.confirmQuit = true
		return s, nil
	case "f":
		return s, push(focus.New(s.bank, s.state))
	case "h":
		return s, push(history.New(s.bank, s.state))
	case "r":
		sess.Reset(s.bank, s.state)
		s.logger.Info("session reset", zap.String("session_id", s.state.ID))
		s.advance()
		s.notice = "Session reset."
		return s, nil
	}

	if s.state.Current == nil {
		if key == "enter" {
			return s, s.endSession()
		}
		return s, nil
	}

	switch key {
	case "s":
		return s.skip()
	case "n":
		s.advance()
		return s, nil
	}

	if s.result != nil {
		if key == "enter" || key == "space" {
			s.advance()
		}
		return s, nil
	}

	switch key {
	case "enter":
		return s.submit(s.choice.SelectedKey())
	case "t":
		s.typing = true
		s.input.Reset()
		return s, s.input.Init()
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	return s, cmd
}

// submit grades key against the current question.
func (s *QuizScreen) submit(key string) (screen.Screen, tea.Cmd) {
	q := s.state.Current
	res, err := sess.Submit(s.bank, s.state, q.ID, key)
	if err != nil {
		switch {
		case errors.Is(err, sess.ErrInvalidAnswerKey):
			s.notice = "Answer with a, b, c or d."
		case errors.Is(err, sess.ErrAlreadyAnswered):
			s.notice = "Already answered. Press N for the next question."
		default:
			s.notice = err.Error()
		}
		s.logger.Debug("submit rejected", zap.Int("question_id", q.ID), zap.Error(err))
		return s, nil
	}

	s.result = &res
	s.notice = ""
	s.choice.Reveal(res.Answer)
	s.input.Submit(res.Correct)
	s.logger.Info("answer graded",
		zap.String("session_id", s.state.ID),
		zap.Int("question_id", res.QuestionID),
		zap.String("concept", res.Concept),
		zap.Bool("correct", res.Correct),
		zap.Float64("prior", res.Prior),
		zap.Float64("mastery", res.Mastery),
	)
	return s, nil
}

func (s *QuizScreen) skip() (screen.Screen, tea.Cmd) {
	id := s.state.Current.ID
	next, err := sess.Skip(s.bank, s.state, id)
	if err != nil {
		s.notice = err.Error()
		return s, nil
	}
	s.logger.Debug("question skipped", zap.Int("question_id", id))
	s.load(next)
	return s, nil
}

// advance asks the selection policy for the next question.
func (s *QuizScreen) advance() {
	s.load(sess.Next(s.bank, s.state))
}

// load resets per-question UI state for q, which may be nil.
func (s *QuizScreen) load(q *questionbank.Question) {
	s.result = nil
	s.notice = ""
	s.input.Reset()
	if q == nil {
		s.logger.Info("bank exhausted", zap.String("session_id", s.state.ID))
		return
	}
	s.choice = components.NewMultiChoice(*q)
}

func (s *QuizScreen) endSession() tea.Cmd {
	next := newSummaryScreen(s.bank, s.state)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func push(scr screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: scr}
	}
}
