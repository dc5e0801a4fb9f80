package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit     int    // max results, newest first (0 = unlimited)
	SessionID string // restrict to one session (empty = all)
	Action    string // session events only: restrict to "start" or "end"
}

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID         string
	Action            string // "start" or "end"
	QuestionsAnswered int
	CorrectAnswers    int
	Skipped           int
	DurationSecs      int
	CreatedAt         time.Time
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	SessionID  string
	QuestionID int
	Concept    string
	Difficulty int
	Answer     string
	Correct    bool
	Mastery    float64 // concept mastery after the answer
	AnsweredAt time.Time
}

// SessionEventRecord is a stored session event.
type SessionEventRecord struct {
	Sequence int64
	SessionEventData
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	Sequence int64
	AnswerEventData
}

// EventRepo provides append and query access to the history log.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvents records a batch of answers atomically, in order.
	AppendAnswerEvents(ctx context.Context, events []AnswerEventData) error

	// QuerySessionEvents returns session events, newest first.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)

	// QueryAnswerEvents returns answer events, newest first.
	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error)
}
