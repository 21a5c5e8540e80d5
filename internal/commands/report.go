package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/simplefinance/simplefinance/internal/analysis"
	"github.com/simplefinance/simplefinance/internal/config"
	"github.com/simplefinance/simplefinance/internal/model"
)

// reportOptions are the report settings after flags override config.
type reportOptions struct {
	criteria         analysis.Criteria
	period           analysis.Period
	top              int
	stdDev           analysis.StdDev
	sigma            float64
	expenseThreshold *decimal.Decimal
	paymentThreshold *decimal.Decimal
	currency         string
	dateLayout       string
}

func newReportCommand(opts *globalOptions) *cobra.Command {
	var (
		filters          filterFlags
		period           string
		top              int
		expenseThreshold string
		paymentThreshold string
	)

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Summarize a statement",
		Long: `Load a statement, classify it with the saved categories and print summary
metrics, trends, top transactions, category totals, recurring rows and
anomalies for the selected range.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			ro, err := buildReportOptions(cmd, cfg, &filters, period, top, expenseThreshold, paymentThreshold)
			if err != nil {
				return err
			}

			sess, err := opts.loadStatement(cfg, args[0])
			if err != nil {
				return err
			}

			return runReport(cmd.OutOrStdout(), sess.Source(), sess.View(ro.criteria), ro)
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&period, "period", "", "trend period: monthly or yearly (default from config)")
	cmd.Flags().IntVar(&top, "top", 0, "rows in the top transactions tables, 3 to 20 (default from config)")
	cmd.Flags().StringVar(&expenseThreshold, "threshold", "", "expense anomaly threshold (default mean + sigma·σ)")
	cmd.Flags().StringVar(&paymentThreshold, "payment-threshold", "", "payment anomaly threshold (default mean + sigma·σ)")

	return cmd
}

func buildReportOptions(cmd *cobra.Command, cfg *config.Config, filters *filterFlags, period string, top int, expenseThreshold, paymentThreshold string) (reportOptions, error) {
	ro := reportOptions{
		top:        cfg.Report.TopN,
		sigma:      cfg.Report.AnomalySigma,
		currency:   cfg.Report.Currency,
		dateLayout: cfg.Export.DateLayout,
	}

	var err error
	if ro.criteria, err = filters.criteria(); err != nil {
		return ro, err
	}

	if !cmd.Flags().Changed("period") {
		period = cfg.Report.TrendPeriod
	}
	if ro.period, err = analysis.ParsePeriod(period); err != nil {
		return ro, err
	}

	if ro.stdDev, err = analysis.ParseStdDev(cfg.Report.StdDev); err != nil {
		return ro, err
	}

	if cmd.Flags().Changed("top") {
		if top < 3 || top > 20 {
			return ro, fmt.Errorf("--top must be between 3 and 20, got %d", top)
		}
		ro.top = top
	}

	if ro.expenseThreshold, err = parseThreshold("threshold", expenseThreshold); err != nil {
		return ro, err
	}
	if ro.paymentThreshold, err = parseThreshold("payment-threshold", paymentThreshold); err != nil {
		return ro, err
	}
	return ro, nil
}

func parseThreshold(name, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("parsing --%s: %w", name, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("--%s must not be negative", name)
	}
	return &d, nil
}

func runReport(out io.Writer, source string, rows []model.BalanceRow, ro reportOptions) error {
	st := defaultStyles()
	view := analysis.Transactions(rows)

	if len(view) == 0 {
		fmt.Fprintf(out, "No transactions in %s match the selection.\n", source)
		return nil
	}

	from, to, _ := analysis.DateSpan(view)
	fmt.Fprintf(out, "%s: %d transactions, %s to %s\n", source, len(view),
		from.Format(ro.dateLayout), to.Format(ro.dateLayout))

	// Summary.
	sum := analysis.Summarize(view)
	net := st.Income.Render(money(ro.currency, sum.NetSavings))
	if sum.NetSavings.IsNegative() {
		net = st.Spent.Render(money(ro.currency, sum.NetSavings))
	}
	fmt.Fprintln(out, st.Summary.Render(fmt.Sprintf(
		"Total Expenses: %s\nTotal Income:   %s\nNet Savings:    %s\nTransactions:   %d",
		st.Spent.Render(money(ro.currency, sum.TotalExpenses)),
		st.Income.Render(money(ro.currency, sum.TotalIncome)),
		net,
		sum.Count,
	)))

	// Trends.
	trends := analysis.Trends(view, ro.period)
	trendRows := make([][]string, len(trends))
	for i, p := range trends {
		trendRows[i] = []string{p.Period, money(ro.currency, p.Debit), money(ro.currency, p.Credit), money(ro.currency, p.Net)}
	}
	st.section(out, "Trends ("+string(ro.period)+")", []string{"Period", "Debit", "Credit", "Net"}, trendRows, "No data.")

	// Running balance.
	balanceRows := make([][]string, len(rows))
	for i, r := range rows {
		balanceRows[i] = []string{
			r.Date.Format(ro.dateLayout),
			r.ID,
			r.Details,
			money(ro.currency, r.SignedAmount),
			money(ro.currency, r.Balance),
		}
	}
	st.section(out, "Running Balance", []string{"Date", "ID", "Details", "Signed Amount", "Balance"}, balanceRows, "No data.")
	fmt.Fprintf(out, "Closing balance: %s\n", money(ro.currency, rows[len(rows)-1].Balance))

	// Top transactions.
	st.section(out, "Top "+strconv.Itoa(ro.top)+" Expenses", transactionHeaders,
		transactionRows(analysis.TopN(view, model.Debit, ro.top), ro.currency, ro.dateLayout), "No expenses.")
	st.section(out, "Top "+strconv.Itoa(ro.top)+" Payments", transactionHeaders,
		transactionRows(analysis.TopN(view, model.Credit, ro.top), ro.currency, ro.dateLayout), "No payments.")

	expenses := analysis.ByDirection(view, model.Debit)
	payments := analysis.ByDirection(view, model.Credit)

	writeDirection(out, st, "Expenses", expenses, ro.expenseThreshold, ro)
	writeDirection(out, st, "Payments", payments, ro.paymentThreshold, ro)
	return nil
}

// writeDirection prints category totals, recurring rows and anomalies for
// one side of the statement.
func writeDirection(out io.Writer, st reportStyles, label string, txns []model.Transaction, threshold *decimal.Decimal, ro reportOptions) {
	totals := analysis.CategoryTotals(txns)
	sum := decimal.Zero
	for _, ct := range totals {
		sum = sum.Add(ct.Amount)
	}
	totalRows := make([][]string, len(totals))
	for i, ct := range totals {
		share := "0.0%"
		if sum.IsPositive() {
			share = ct.Amount.Div(sum).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
		}
		totalRows[i] = []string{ct.Category, money(ro.currency, ct.Amount), strconv.Itoa(ct.Count), share}
	}
	st.section(out, label+" by Category", []string{"Category", "Amount", "Count", "Share"}, totalRows, "No "+label+".")

	st.section(out, "Recurring "+label, transactionHeaders,
		transactionRows(analysis.Recurring(txns), ro.currency, ro.dateLayout), "No recurring "+label+" detected.")

	limit := analysis.AnomalyThresholdSigma(txns, ro.stdDev, ro.sigma)
	if threshold != nil {
		limit = *threshold
	}
	st.section(out, fmt.Sprintf("Anomalies in %s (above %s)", label, money(ro.currency, limit)), transactionHeaders,
		transactionRows(analysis.Anomalies(txns, limit), ro.currency, ro.dateLayout), "No anomalies detected.")
}
