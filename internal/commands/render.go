package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/simplefinance/simplefinance/internal/model"
)

// reportStyles are the lipgloss styles used by the terminal report.
type reportStyles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Income  lipgloss.Style
	Spent   lipgloss.Style
	Summary lipgloss.Style
}

func defaultStyles() reportStyles {
	return reportStyles{
		Title:   lipgloss.NewStyle().Bold(true).MarginTop(1),
		Header:  lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:    lipgloss.NewStyle().Padding(0, 1),
		Income:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		Spent:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		Summary: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2),
	}
}

// money formats an amount as "AED 12,345.60" or "AED -112.00".
func money(currency string, d decimal.Decimal) string {
	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}
	return currency + " " + sign + humanize.FormatFloat("#,###.##", d.Abs().Round(2).InexactFloat64())
}

func (s reportStyles) table(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			return s.Cell
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// section writes a titled block. Empty rows print placeholder instead of a
// table.
func (s reportStyles) section(w io.Writer, title string, headers []string, rows [][]string, placeholder string) {
	fmt.Fprintln(w, s.Title.Render(title))
	if len(rows) == 0 {
		fmt.Fprintln(w, placeholder)
		return
	}
	fmt.Fprintln(w, s.table(headers, rows))
}

var transactionHeaders = []string{"ID", "Date", "Details", "Amount", "Category"}

func transactionRows(txns []model.Transaction, currency, dateLayout string) [][]string {
	rows := make([][]string, len(txns))
	for i, txn := range txns {
		rows[i] = []string{
			txn.ID,
			txn.Date.Format(dateLayout),
			txn.Details,
			money(currency, txn.Amount),
			txn.Category,
		}
	}
	return rows
}

func keywordList(keywords []string) string {
	if len(keywords) == 0 {
		return "-"
	}
	return strings.Join(keywords, ", ")
}
