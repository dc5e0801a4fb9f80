package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptutor/internal/store"
)

func newHistoryCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past sessions and answers from the history log",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			sessionID, _ := cmd.Flags().GetString("session")
			answers, _ := cmd.Flags().GetBool("answers")

			s, err := c.openHistory()
			if err != nil {
				return err
			}
			if s == nil {
				return errors.New("history log is disabled")
			}
			defer s.Close()

			repo := s.EventRepo()
			opts := store.QueryOpts{Limit: limit, SessionID: sessionID}
			out := cmd.OutOrStdout()

			if answers {
				events, err := repo.QueryAnswerEvents(cmd.Context(), opts)
				if err != nil {
					return fmt.Errorf("query answers: %w", err)
				}
				if len(events) == 0 {
					fmt.Fprintln(out, "No answers recorded.")
					return nil
				}
				fmt.Fprintf(out, "%-19s %-6s %-24s %-4s %-6s %-6s %s\n", "Answered", "ID", "Concept", "Diff", "Answer", "Result", "Mastery")
				for _, e := range events {
					result := "wrong"
					if e.Correct {
						result = "right"
					}
					fmt.Fprintf(out, "%-19s %-6d %-24s %-4d %-6s %-6s %3.0f%%\n",
						e.AnsweredAt.Local().Format(time.DateTime), e.QuestionID, e.Concept,
						e.Difficulty, e.Answer, result, e.Mastery*100)
				}
				return nil
			}

			opts.Action = store.ActionEnd
			ends, err := repo.QuerySessionEvents(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("query sessions: %w", err)
			}
			if len(ends) == 0 {
				fmt.Fprintln(out, "No sessions recorded.")
				return nil
			}
			fmt.Fprintf(out, "%-19s %-36s %-8s %-7s %-7s %s\n", "Ended", "Session", "Answered", "Correct", "Skipped", "Duration")
			for _, e := range ends {
				fmt.Fprintf(out, "%-19s %-36s %-8d %-7d %-7d %s\n",
					e.CreatedAt.Local().Format(time.DateTime), e.SessionID, e.QuestionsAnswered,
					e.CorrectAnswers, e.Skipped, time.Duration(e.DurationSecs)*time.Second)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of sessions or answers to show (0 for all)")
	cmd.Flags().String("session", "", "Only show entries for this session ID")
	cmd.Flags().Bool("answers", false, "List individual answers instead of sessions")
	return cmd
}
