package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/adaptutor/internal/config"
	"github.com/abhisek/adaptutor/internal/logging"
	"github.com/abhisek/adaptutor/internal/questionbank"
	"github.com/abhisek/adaptutor/internal/session"
	"github.com/abhisek/adaptutor/internal/store"
)

// cli carries what PersistentPreRunE resolves to every subcommand.
type cli struct {
	cfg    *config.Config
	logger *zap.Logger
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "adaptutor",
		Short: "Adaptive multiple-choice quiz tutor",
		Long: `adaptutor quizzes you from a question bank, tracks per-concept mastery with
Bayesian Knowledge Tracing, and always asks next about your weakest concept.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd, false)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default ./adaptutor.yaml or $XDG_CONFIG_HOME/adaptutor/adaptutor.yaml)")
	pf.String("bank", "", "Path to the question bank (.csv, .xlsx, .yaml, .json)")
	pf.String("sheet", "", "Worksheet to read from an .xlsx bank (default first sheet)")
	pf.Bool("strict", false, "Fail when any bank row is rejected")
	pf.String("history-db", "", `Path to the SQLite history log ("off" disables it)`)
	pf.String("log-level", "", "Log level: debug, info, warn, error or off")

	rootCmd.AddCommand(
		newPlayCmd(c),
		newQuizCmd(c),
		newBankCmd(c),
		newHistoryCmd(c),
		newVersionCmd(),
	)
	return rootCmd
}

func (c *cli) setup(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{File: cfg.Log.File, Level: cfg.Log.Level})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	c.cfg = cfg
	c.logger = logger.With(zap.String("command", cmd.Name()))
	return nil
}

// loadBank reads the configured bank. Rejected rows are logged and counted
// on stderr unless strict mode turns them into an error.
func (c *cli) loadBank(cmd *cobra.Command) (*questionbank.Bank, error) {
	bank, err := questionbank.Load(c.cfg.Bank.Path, questionbank.LoadOptions{
		Sheet:  c.cfg.Bank.Sheet,
		Strict: c.cfg.Bank.Strict,
	})
	if err != nil {
		return nil, fmt.Errorf("load bank %s: %w", c.cfg.Bank.Path, err)
	}

	for _, re := range bank.Rejected() {
		c.logger.Warn("bank row rejected",
			zap.Int("line", re.Line),
			zap.String("id", re.ID),
			zap.String("field", re.Field),
			zap.Error(re.Err),
		)
	}
	if n := len(bank.Rejected()); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d bank rows rejected (see `adaptutor bank check`)\n", n)
	}
	c.logger.Info("bank loaded",
		zap.String("path", c.cfg.Bank.Path),
		zap.Int("questions", bank.Len()),
		zap.Int("concepts", len(bank.Concepts())),
	)
	return bank, nil
}

// newSession starts a session with the configured parameters.
func (c *cli) newSession(bank *questionbank.Bank) *session.State {
	st := session.New(bank, c.cfg.Params())
	st.FocusThreshold = c.cfg.FocusThreshold
	c.logger.Info("session started", zap.String("session_id", st.ID))
	return st
}

// openHistory opens the history log, or returns nil when it is disabled.
func (c *cli) openHistory() (*store.Store, error) {
	path := c.cfg.History.DB
	switch path {
	case "off":
		return nil, nil
	case "":
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve history path: %w", err)
		}
		path = p
	default:
		if err := store.EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}
	return s, nil
}

// recordSession flushes a finished session to the history log.
func (c *cli) recordSession(cmd *cobra.Command, bank *questionbank.Bank, st *session.State) error {
	if len(st.History) == 0 && st.Skipped == 0 {
		return nil
	}
	s, err := c.openHistory()
	if err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	defer s.Close()

	if err := session.Record(cmd.Context(), s.EventRepo(), bank, st); err != nil {
		return err
	}
	c.logger.Info("session recorded",
		zap.String("session_id", st.ID),
		zap.Int("answers", len(st.History)),
	)
	return nil
}
