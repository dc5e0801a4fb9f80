package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"
)

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sequenceCounter hands out one monotonic sequence shared by session and
// answer events, so the two tables can be merged back into a single
// timeline. The mutex serializes within the process; RETURNING makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
}

// newSequenceCounter ensures the tracking table exists and is seeded.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{}, nil
}

// Next returns the next sequence number and increments the counter. Pass
// the open transaction when called inside one.
func (sc *sequenceCounter) Next(ctx context.Context, q queryRower) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := q.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	seq, err := r.seq.Next(ctx, tx)
	if err != nil {
		return err
	}

	createdAt := data.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO session_events
		(sequence, session_id, action, questions_answered, correct_answers, skipped, duration_secs, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, data.SessionID, data.Action, data.QuestionsAnswered, data.CorrectAnswers,
		data.Skipped, data.DurationSecs, createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert session event: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvents(ctx context.Context, events []AnswerEventData) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for i, ev := range events {
		seq, err := r.seq.Next(ctx, tx)
		if err != nil {
			return err
		}
		answeredAt := ev.AnsweredAt
		if answeredAt.IsZero() {
			answeredAt = time.Now()
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO answer_events
			(sequence, session_id, question_id, concept, difficulty, answer, correct, mastery, answered_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			seq, ev.SessionID, ev.QuestionID, ev.Concept, ev.Difficulty, ev.Answer,
			ev.Correct, ev.Mastery, answeredAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert answer event %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	query, args := buildQuery(`SELECT sequence, session_id, action, questions_answered,
		correct_answers, skipped, duration_secs, created_at FROM session_events`, opts, opts.Action)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEventRecord
	for rows.Next() {
		var rec SessionEventRecord
		if err := rows.Scan(&rec.Sequence, &rec.SessionID, &rec.Action, &rec.QuestionsAnswered,
			&rec.CorrectAnswers, &rec.Skipped, &rec.DurationSecs, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error) {
	query, args := buildQuery(`SELECT sequence, session_id, question_id, concept, difficulty,
		answer, correct, mastery, answered_at FROM answer_events`, opts, "")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEventRecord
	for rows.Next() {
		var rec AnswerEventRecord
		if err := rows.Scan(&rec.Sequence, &rec.SessionID, &rec.QuestionID, &rec.Concept,
			&rec.Difficulty, &rec.Answer, &rec.Correct, &rec.Mastery, &rec.AnsweredAt); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// buildQuery appends filters, newest-first ordering and the limit to base.
// action is matched only when non-empty.
func buildQuery(base string, opts QueryOpts, action string) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if opts.SessionID != "" {
		conds = append(conds, "session_id = ?")
		args = append(args, opts.SessionID)
	}
	if action != "" {
		conds = append(conds, "action = ?")
		args = append(args, action)
	}

	query := base
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	return query, args
}
