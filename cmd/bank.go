package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBankCmd(c *cli) *cobra.Command {
	bankCmd := &cobra.Command{
		Use:   "bank",
		Short: "Inspect the question bank",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List questions, optionally for one concept",
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := c.loadBank(cmd)
			if err != nil {
				return err
			}
			concept, _ := cmd.Flags().GetString("concept")

			questions := bank.Questions()
			if concept != "" {
				questions = bank.ByConcept(concept)
				if len(questions) == 0 {
					return fmt.Errorf("no questions for concept %q", concept)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-6s %-24s %-4s %-3s %s\n", "ID", "Concept", "Diff", "Key", "Question")
			for _, q := range questions {
				fmt.Fprintf(out, "%-6d %-24s %-4d %-3s %s\n", q.ID, q.Concept, q.Difficulty, q.Correct, q.Text)
			}
			fmt.Fprintf(out, "\n%d questions\n", len(questions))
			return nil
		},
	}
	listCmd.Flags().String("concept", "", "Only list questions for this concept")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the bank and report rejected rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := c.loadBank(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d questions across %d concepts\n",
				c.cfg.Bank.Path, bank.Len(), len(bank.Concepts()))
			for _, concept := range bank.Concepts() {
				fmt.Fprintf(out, "  %-24s %3d questions  %d links\n",
					concept, len(bank.ByConcept(concept)), len(bank.ResourceLinks(concept)))
			}

			rejected := bank.Rejected()
			if len(rejected) == 0 {
				fmt.Fprintln(out, "No rows rejected.")
				return nil
			}
			fmt.Fprintf(out, "%d rows rejected:\n", len(rejected))
			for _, re := range rejected {
				fmt.Fprintf(out, "  %s\n", re.Error())
			}
			return fmt.Errorf("%d rows rejected", len(rejected))
		},
	}

	bankCmd.AddCommand(listCmd, checkCmd)
	return bankCmd
}
