package focus

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/adaptutor/internal/mastery"
	"github.com/abhisek/adaptutor/internal/questionbank"
	"github.com/abhisek/adaptutor/internal/router"
	"github.com/abhisek/adaptutor/internal/session"
)

func testState(t *testing.T) (*questionbank.Bank, *session.State) {
	t.Helper()
	bank, err := questionbank.New([]questionbank.Row{
		{ID: "1", Concept: "Fractions", Question: "Q1", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", Correct: "a", ResourceURL: "https://example.com/fractions"},
		{ID: "2", Concept: "Decimals", Question: "Q2", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", Correct: "b"},
	})
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}
	return bank, session.New(bank, mastery.DefaultParams())
}

func TestFocusScreen_ListsWeakConcepts(t *testing.T) {
	bank, st := testState(t)
	st.Mastery.Set("Decimals", 0.9)

	view := ansi.Strip(New(bank, st).View(100, 30))
	if !strings.Contains(view, "Fractions") {
		t.Error("expected Fractions in focus list")
	}
	if strings.Contains(view, "Decimals") {
		t.Error("mastered concept should not be listed")
	}
	if !strings.Contains(view, "https://example.com/fractions") {
		t.Error("expected resource link")
	}
}

func TestFocusScreen_GreatJob(t *testing.T) {
	bank, st := testState(t)
	st.Mastery.Set("Fractions", 0.7)
	st.Mastery.Set("Decimals", 0.9)

	if !strings.Contains(New(bank, st).View(100, 30), "Great job") {
		t.Error("expected great job message")
	}
}

func TestFocusScreen_EscPops(t *testing.T) {
	bank, st := testState(t)
	_, cmd := New(bank, st).Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
