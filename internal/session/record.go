package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/adaptutor/internal/questionbank"
	"github.com/abhisek/adaptutor/internal/store"
)

// Record flushes the session to the history log: its answers in order,
// bracketed by start and end events. It runs once at session end so the
// tutoring loop itself never touches disk.
func Record(ctx context.Context, repo store.EventRepo, bank *questionbank.Bank, st *State) error {
	if err := repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: st.ID,
		Action:    store.ActionStart,
		CreatedAt: st.StartedAt,
	}); err != nil {
		return fmt.Errorf("record session start: %w", err)
	}

	events := make([]store.AnswerEventData, 0, len(st.History))
	for _, h := range HistoryView(bank, st) {
		events = append(events, store.AnswerEventData{
			SessionID:  st.ID,
			QuestionID: h.QuestionID,
			Concept:    h.Concept,
			Difficulty: h.Difficulty,
			Answer:     h.Answer,
			Correct:    h.Correct,
			Mastery:    h.Mastery,
			AnsweredAt: h.AnsweredAt,
		})
	}
	if err := repo.AppendAnswerEvents(ctx, events); err != nil {
		return fmt.Errorf("record answers: %w", err)
	}

	sum := BuildSummary(st)
	if err := repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:         st.ID,
		Action:            store.ActionEnd,
		QuestionsAnswered: sum.Answered,
		CorrectAnswers:    sum.Correct,
		Skipped:           sum.Skipped,
		DurationSecs:      int(sum.Duration / time.Second),
		CreatedAt:         time.Now(),
	}); err != nil {
		return fmt.Errorf("record session end: %w", err)
	}
	return nil
}
