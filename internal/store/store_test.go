package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAppendAndQueryAnswerEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	events := []AnswerEventData{
		{SessionID: "s1", QuestionID: 1, Concept: "Fractions", Difficulty: 1, Answer: "a", Correct: true, Mastery: 0.624, AnsweredAt: now},
		{SessionID: "s1", QuestionID: 2, Concept: "Fractions", Difficulty: 2, Answer: "c", Correct: false, Mastery: 0.34, AnsweredAt: now.Add(time.Second)},
		{SessionID: "s2", QuestionID: 3, Concept: "Decimals", Difficulty: 1, Answer: "b", Correct: true, Mastery: 0.624, AnsweredAt: now.Add(2 * time.Second)},
	}
	if err := repo.AppendAnswerEvents(ctx, events); err != nil {
		t.Fatalf("append: %v", err)
	}

	all, err := repo.QueryAnswerEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	// Newest first.
	if all[0].QuestionID != 3 || all[2].QuestionID != 1 {
		t.Errorf("order = %d,%d,%d, want 3,2,1", all[0].QuestionID, all[1].QuestionID, all[2].QuestionID)
	}
	if !all[2].Correct || all[1].Correct {
		t.Error("correct flags not round-tripped")
	}
	if !all[2].AnsweredAt.Equal(now) {
		t.Errorf("answered_at = %v, want %v", all[2].AnsweredAt, now)
	}

	limited, err := repo.QueryAnswerEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 1 || limited[0].QuestionID != 3 {
		t.Errorf("limit 1 returned %+v", limited)
	}

	s1, err := repo.QueryAnswerEvents(ctx, QueryOpts{SessionID: "s1"})
	if err != nil {
		t.Fatalf("query session: %v", err)
	}
	if len(s1) != 2 {
		t.Errorf("session s1 has %d events, want 2", len(s1))
	}
}

func TestAppendEmptyBatch(t *testing.T) {
	s := openTestStore(t)
	if err := s.EventRepo().AppendAnswerEvents(context.Background(), nil); err != nil {
		t.Fatalf("append empty: %v", err)
	}
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: "start"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := repo.AppendAnswerEvents(ctx, []AnswerEventData{{SessionID: "s1", QuestionID: 1, Concept: "X", Difficulty: 1, Answer: "a"}}); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: "end", QuestionsAnswered: 1}); err != nil {
		t.Fatalf("end: %v", err)
	}

	sessions, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query sessions: %v", err)
	}
	answers, err := repo.QueryAnswerEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query answers: %v", err)
	}
	if len(sessions) != 2 || len(answers) != 1 {
		t.Fatalf("got %d sessions, %d answers", len(sessions), len(answers))
	}

	start, end := sessions[1], sessions[0]
	if start.Action != "start" || end.Action != "end" {
		t.Fatalf("actions = %q,%q", start.Action, end.Action)
	}
	if !(start.Sequence < answers[0].Sequence && answers[0].Sequence < end.Sequence) {
		t.Errorf("sequences not interleaved: start=%d answer=%d end=%d",
			start.Sequence, answers[0].Sequence, end.Sequence)
	}
	if end.QuestionsAnswered != 1 {
		t.Errorf("questions_answered = %d, want 1", end.QuestionsAnswered)
	}
}

func TestQuerySessionEvents_ActionFilterAppliesBeforeLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, id := range []string{"s1", "s2", "s3"} {
		for _, action := range []string{ActionStart, ActionEnd} {
			if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: id, Action: action}); err != nil {
				t.Fatalf("append %s %s: %v", id, action, err)
			}
		}
	}

	ends, err := repo.QuerySessionEvents(ctx, QueryOpts{Limit: 2, Action: ActionEnd})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(ends) != 2 {
		t.Fatalf("got %d events, want 2", len(ends))
	}
	for _, e := range ends {
		if e.Action != ActionEnd {
			t.Errorf("action = %q, want %q", e.Action, ActionEnd)
		}
	}
	if ends[0].SessionID != "s3" || ends[1].SessionID != "s2" {
		t.Errorf("sessions = %s,%s, want s3,s2", ends[0].SessionID, ends[1].SessionID)
	}

	one, err := repo.QuerySessionEvents(ctx, QueryOpts{SessionID: "s1", Action: ActionStart})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(one) != 1 || one[0].SessionID != "s1" || one[0].Action != ActionStart {
		t.Errorf("got %+v, want the single s1 start event", one)
	}
}

func TestReopenKeepsSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendSessionEvent(ctx, SessionEventData{SessionID: "a", Action: "start"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if err := s.EventRepo().AppendSessionEvent(ctx, SessionEventData{SessionID: "b", Action: "start"}); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}

	recs, err := s.EventRepo().QuerySessionEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 2 || recs[0].Sequence != 2 || recs[1].Sequence != 1 {
		t.Errorf("unexpected records after reopen: %+v", recs)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	want := filepath.Join(dir, "adaptutor", "history.db")
	if p != want {
		t.Errorf("path = %q, want %q", p, want)
	}
}
