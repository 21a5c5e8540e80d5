package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/simplefinance/simplefinance/internal/analysis"
)

// flagDateLayout is the layout of --from and --to.
const flagDateLayout = "2006-01-02"

// filterFlags are the selection flags shared by report and export.
type filterFlags struct {
	from     string
	to       string
	category string
	search   string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "last date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.category, "category", analysis.AllCategories, "only this category")
	cmd.Flags().StringVar(&f.search, "search", "", "only rows whose details contain this text")
}

func (f *filterFlags) criteria() (analysis.Criteria, error) {
	c := analysis.Criteria{Category: f.category, Search: f.search}
	var err error
	if c.From, err = parseFlagDate("from", f.from); err != nil {
		return c, err
	}
	if c.To, err = parseFlagDate("to", f.to); err != nil {
		return c, err
	}
	if !c.From.IsZero() && !c.To.IsZero() && c.To.Before(c.From) {
		return c, fmt.Errorf("--to %s is before --from %s", f.to, f.from)
	}
	return c, nil
}

func parseFlagDate(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(flagDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing --%s: %w", name, err)
	}
	return t, nil
}
