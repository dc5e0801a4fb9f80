package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/adaptutor/internal/mastery"
	"github.com/abhisek/adaptutor/internal/questionbank"
	"github.com/abhisek/adaptutor/internal/session"
)

func newQuizCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "quiz",
		Short: "Run a quiz session in plain line mode",
		Long: `Run a quiz session without the terminal UI. Questions are printed one at a
time and commands are read line by line from stdin:

  a-d    answer the current question
  s      skip the current question
  n      next question (after feedback)
  rec    show recommendations and mastery
  h      show this session's answers
  r      reset the session
  q      quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := c.loadBank(cmd)
			if err != nil {
				return err
			}
			st := c.newSession(bank)

			runErr := runLineQuiz(cmd.InOrStdin(), cmd.OutOrStdout(), bank, st, c.logger)
			if err := c.recordSession(cmd, bank, st); err != nil && runErr == nil {
				runErr = err
			}
			return runErr
		},
	}
}

// runLineQuiz drives one session over a line-oriented reader. It returns
// when the learner quits or input ends.
func runLineQuiz(in io.Reader, out io.Writer, bank *questionbank.Bank, st *session.State, logger *zap.Logger) error {
	scanner := bufio.NewScanner(in)

	session.Next(bank, st)
	shown := false

	for {
		if st.Current == nil {
			fmt.Fprintln(out, "\nNo more questions. Enter q to finish, rec for recommendations or r to start over.")
		} else if !shown {
			printQuestion(out, bank, st)
			shown = true
		}

		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		input := strings.ToLower(strings.TrimSpace(scanner.Text()))

		switch input {
		case "":
			continue
		case "q", "quit", "exit":
			printSummary(out, bank, st)
			return nil
		case "rec", "f":
			printRecommendations(out, bank, st)
		case "h", "history":
			printHistory(out, bank, st)
		case "r", "reset":
			session.Reset(bank, st)
			session.Next(bank, st)
			shown = false
			fmt.Fprintln(out, "Session reset.")
			logger.Info("session reset", zap.String("session_id", st.ID))
		case "s", "skip":
			if st.Current == nil {
				continue
			}
			if _, err := session.Skip(bank, st, st.Current.ID); err != nil {
				return err
			}
			shown = false
		case "n", "next":
			if st.Current == nil {
				continue
			}
			if !st.Asked[st.Current.ID] {
				fmt.Fprintln(out, "Answer with a-d or skip with s first.")
				continue
			}
			session.Next(bank, st)
			shown = false
		default:
			if st.Current == nil {
				fmt.Fprintf(out, "Unknown command %q.\n", input)
				continue
			}
			res, err := session.Submit(bank, st, st.Current.ID, input)
			switch {
			case errors.Is(err, session.ErrInvalidAnswerKey):
				fmt.Fprintln(out, "Answer with a, b, c or d (s to skip, q to quit).")
				continue
			case errors.Is(err, session.ErrAlreadyAnswered):
				fmt.Fprintln(out, "Already answered. Enter n for the next question.")
				continue
			case err != nil:
				return err
			}
			logger.Debug("answer graded",
				zap.Int("question_id", res.QuestionID),
				zap.String("concept", res.Concept),
				zap.Bool("correct", res.Correct),
				zap.Float64("mastery", res.Mastery),
			)
			printFeedback(out, st.Current, res)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	printSummary(out, bank, st)
	return nil
}

func printQuestion(out io.Writer, bank *questionbank.Bank, st *session.State) {
	q := st.Current
	m, _ := st.Mastery.Get(q.Concept)
	fmt.Fprintf(out, "\n── Question %d/%d ── %s · difficulty %d · mastery %.0f%%\n",
		len(st.Asked)+1, bank.Len(), q.Concept, q.Difficulty, m*100)
	fmt.Fprintln(out, q.Text)
	for i, key := range questionbank.OptionKeys {
		fmt.Fprintf(out, "  %s) %s\n", key, q.Options[i])
	}
}

func printFeedback(out io.Writer, q *questionbank.Question, res session.Result) {
	if res.Correct {
		fmt.Fprintln(out, "✓ Correct!")
	} else {
		text, _ := q.Option(res.CorrectKey)
		fmt.Fprintf(out, "✗ Not quite. The answer is %s) %s.\n", res.CorrectKey, text)
	}
	fmt.Fprintf(out, "  %s mastery: %.0f%% → %.0f%%\n", res.Concept, res.Prior*100, res.Mastery*100)
	if res.Explanation != "" {
		fmt.Fprintf(out, "  %s\n", res.Explanation)
	}
	if res.ResourceURL != "" {
		fmt.Fprintf(out, "  Learn this concept: %s\n", res.ResourceURL)
	}
	fmt.Fprintln(out, "Enter n for the next question.")
}

func printRecommendations(out io.Writer, bank *questionbank.Bank, st *session.State) {
	recs := session.Recommendations(bank, st)
	if len(recs) == 0 {
		fmt.Fprintln(out, "Great job! Every concept is at or above the focus threshold.")
	} else {
		fmt.Fprintln(out, "Focus on:")
		for _, r := range recs {
			fmt.Fprintf(out, "  %-24s %3.0f%%\n", r.Concept, r.Mastery*100)
			for _, url := range r.ResourceURLs {
				fmt.Fprintf(out, "    %s\n", url)
			}
		}
	}

	fmt.Fprintln(out, "Mastery:")
	for _, e := range st.Mastery.Descending() {
		fmt.Fprintf(out, "  %-24s %3.0f%%\n", e.Concept, e.Mastery*100)
	}
}

func printHistory(out io.Writer, bank *questionbank.Bank, st *session.State) {
	entries := session.HistoryView(bank, st)
	if len(entries) == 0 {
		fmt.Fprintln(out, "No answers yet.")
		return
	}
	fmt.Fprintf(out, "%-4s %-6s %-24s %-4s %-6s %-6s %s\n", "#", "ID", "Concept", "Diff", "Answer", "Result", "Mastery")
	for i, e := range entries {
		result := "wrong"
		if e.Correct {
			result = "right"
		}
		fmt.Fprintf(out, "%-4d %-6d %-24s %-4d %-6s %-6s %3.0f%%\n",
			i+1, e.QuestionID, e.Concept, e.Difficulty, e.Answer, result, e.Mastery*100)
	}
}

func printSummary(out io.Writer, bank *questionbank.Bank, st *session.State) {
	sum := session.BuildSummary(st)
	fmt.Fprintln(out, "\n── Session summary ──")
	fmt.Fprintf(out, "Answered %d, correct %d (%.0f%%), skipped %d\n",
		sum.Answered, sum.Correct, sum.Accuracy*100, sum.Skipped)
	for _, c := range sum.Concepts {
		fmt.Fprintf(out, "  %-24s %d/%d  %s\n", c.Concept, c.Correct, c.Attempted,
			mastery.ResolveState(c.Mastery, c.Attempted, st.FocusThreshold))
	}
	printRecommendations(out, bank, st)
}
