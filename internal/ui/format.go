package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/storehours/internal/hours"
	"github.com/javiermolinar/storehours/internal/ingest"
)

var recordHeaders = []string{"STORE", "NAME", "DAY", "OPEN", "CLOSE"}

// Table styles.
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// labelWidth returns how wide the NAME column may be for a terminal width.
func labelWidth(width int) int {
	// STORE, DAY, OPEN and CLOSE columns plus borders and padding.
	const fixed = 8 + 6 + 8 + 8 + 6
	if w := width - fixed; w > 12 {
		return w
	}
	return 12
}

// renderRecords renders records as a bordered table.
func renderRecords(records []hours.Record, width int) string {
	maxLabel := labelWidth(width)

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.StoreID),
			runewidth.Truncate(r.Label, maxLabel, "…"),
			r.Weekday.String(),
			r.Open,
			r.Close,
		})
	}

	t := table.New().
		Headers(recordHeaders...).
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		BorderRow(false).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.Render()
}

// writeRecords prints records in the requested format.
func writeRecords(w io.Writer, records []hours.Record, format string) error {
	switch format {
	case "csv":
		return writeCSV(w, records)
	case "table":
		_, err := fmt.Fprintln(w, renderRecords(records, termWidth()))
		return err
	default:
		return fmt.Errorf("unknown output format %q (want csv or table)", format)
	}
}

// printSummary prints batch totals.
func printSummary(w io.Writer, res *ingest.Result) {
	fmt.Fprintf(w, "%s %s from %s",
		formatHeader("Parsed"),
		formatStats(fmt.Sprintf("%d records", len(res.Records))),
		formatStats(fmt.Sprintf("%d lines", res.Lines)))
	if res.Skipped > 0 || len(res.Errors) > 0 {
		fmt.Fprintf(w, " %s", formatWarn(fmt.Sprintf("(%d skipped, %d errors)", res.Skipped, len(res.Errors))))
	}
	fmt.Fprintln(w)
}
