package commands

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/simplefinance/simplefinance/internal/config"
	"github.com/simplefinance/simplefinance/internal/session"
)

func newRecategorizeCommand(opts *globalOptions) *cobra.Command {
	var (
		ids      []string
		category string
		amount   string
	)

	cmd := &cobra.Command{
		Use:   "recategorize <file>",
		Short: "Assign transactions to a category and learn their details as keywords",
		Long: `Load a statement, move the transactions named by --id to --category and
save each one's details as a keyword of that category, so the next load
classifies matching rows automatically. Use "report" to look up IDs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if category == "" && amount == "" {
				return fmt.Errorf("nothing to change: pass --category and/or --amount")
			}

			edits := make([]session.Edit, len(ids))
			for i, id := range ids {
				edits[i] = session.Edit{ID: id, Category: category}
			}
			if amount != "" {
				d, err := decimal.NewFromString(amount)
				if err != nil {
					return fmt.Errorf("parsing --amount: %w", err)
				}
				for i := range edits {
					edits[i].Amount = &d
				}
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			sess, err := opts.loadStatement(cfg, args[0])
			if err != nil {
				return err
			}
			return runRecategorize(cmd.OutOrStdout(), cfg, sess, edits)
		},
	}

	cmd.Flags().StringSliceVar(&ids, "id", nil, "transaction ID, e.g. 2024-01-003 (repeatable)")
	cmd.Flags().StringVar(&category, "category", "", "category to assign")
	cmd.Flags().StringVar(&amount, "amount", "", "corrected amount")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runRecategorize(out io.Writer, cfg *config.Config, sess *session.Session, edits []session.Edit) error {
	learned, err := sess.ApplyEdits(edits)
	if err != nil {
		return err
	}

	byID := make(map[string]bool, len(edits))
	for _, e := range edits {
		byID[e.ID] = true
	}
	var rows [][]string
	for _, row := range transactionRows(sess.Transactions(), cfg.Report.Currency, cfg.Export.DateLayout) {
		if byID[row[0]] {
			rows = append(rows, row)
		}
	}
	fmt.Fprintln(out, defaultStyles().table(transactionHeaders, rows))
	fmt.Fprintf(out, "Updated %d transaction(s), learned %d keyword(s)\n", len(rows), learned)
	return nil
}
