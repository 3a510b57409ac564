package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csc-gandhinagar/stipend-flow/internal/cli"
	"github.com/csc-gandhinagar/stipend-flow/internal/model"
	"github.com/csc-gandhinagar/stipend-flow/internal/report"
	"github.com/csc-gandhinagar/stipend-flow/internal/stipend"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the category-wise stipend report for a month",
		Long: `Report aggregates approved applicants with attendance for the given
month into category annexures, a gender-wise summary, and the noting
document. Without an output flag the summary is printed to the terminal.`,
		RunE: runReport,
	}

	cmd.Flags().String("month", "", "Month to report on (e.g. Jan, January, 1)")
	cmd.Flags().String("out", "", "Directory to write CSV annexures and the noting text into")
	cmd.Flags().String("xlsx", "", "Path to write the report as a single XLSX workbook")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	month, _ := cmd.Flags().GetString("month")
	outDir, _ := cmd.Flags().GetString("out")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")

	session, _, cleanup, err := loadSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	monthly, err := report.Build(session.Applicants, month)
	if err != nil {
		return err
	}

	if outDir != "" {
		written, err := report.WriteCSVDir(monthly, outDir)
		if err != nil {
			return err
		}
		for _, path := range written {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("  wrote "+path)); err != nil {
				return err
			}
		}
	}
	if xlsxPath != "" {
		if err := report.WriteWorkbook(monthly, xlsxPath); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("  wrote "+xlsxPath)); err != nil {
			return err
		}
	}

	if outDir == "" && xlsxPath == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox(
			monthly.Summary.Title, renderTable(&monthly.Summary)))
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
		"%s: %d eligible applicants, total Rs. %s",
		monthly.Month, monthly.TotalCount, stipend.FormatAmount(monthly.GrandTotal.IntPart()))))
	return err
}

// renderTable lays out a report table with padded columns for terminal display.
func renderTable(t *model.Table) string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i < len(widths) {
				b.WriteString(fmt.Sprintf("%-*s  ", widths[i], cell))
			}
		}
		b.WriteString("\n")
	}

	writeRow(t.Headers)
	for _, row := range t.Rows {
		writeRow(row)
	}
	return strings.TrimRight(b.String(), "\n")
}
