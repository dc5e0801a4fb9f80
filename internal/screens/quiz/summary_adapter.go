package quiz

import (
	"github.com/abhisek/adaptutor/internal/questionbank"
	"github.com/abhisek/adaptutor/internal/screen"
	"github.com/abhisek/adaptutor/internal/screens/summary"
	sess "github.com/abhisek/adaptutor/internal/session"
)

// newSummaryScreen builds the end-of-session screen from the live state.
func newSummaryScreen(bank *questionbank.Bank, state *sess.State) screen.Screen {
	return summary.New(sess.BuildSummary(state), sess.Recommendations(bank, state), state.FocusThreshold)
}
