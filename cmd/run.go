package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/adaptutor/internal/app"
)

func newPlayCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start a quiz session in the terminal UI (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			noWelcome, _ := cmd.Flags().GetBool("no-welcome")
			return c.runPlay(cmd, noWelcome)
		},
	}
	cmd.Flags().Bool("no-welcome", false, "Skip the welcome screen")
	return cmd
}

// runPlay loads the bank, runs the TUI and flushes the session to the
// history log once the program exits.
func (c *cli) runPlay(cmd *cobra.Command, noWelcome bool) error {
	bank, err := c.loadBank(cmd)
	if err != nil {
		return err
	}
	st := c.newSession(bank)

	runErr := app.Run(app.Options{
		Bank:        bank,
		State:       st,
		Logger:      c.logger,
		SkipWelcome: noWelcome,
	})

	// Keep whatever was answered even if the TUI failed.
	if err := c.recordSession(cmd, bank, st); err != nil {
		if runErr != nil {
			return runErr
		}
		return err
	}
	return runErr
}
