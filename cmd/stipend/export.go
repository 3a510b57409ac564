package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/csc-gandhinagar/stipend-flow/internal/cli"
	"github.com/csc-gandhinagar/stipend-flow/internal/common"
)

// statusHeader is the extra column appended to exports so the review
// outcome travels with the original data.
const statusHeader = "Processing Status"

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the working set with review statuses",
		Long: `Export writes every applicant in the original column order, with columns
added after ingestion and a Processing Status column appended. The output
format follows the file extension (.csv or .xlsx).`,
		RunE: runExport,
	}

	cmd.Flags().StringP("output", "o", "applicants.csv", "Output file (.csv or .xlsx)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	output, _ := cmd.Flags().GetString("output")

	session, _, cleanup, err := loadSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	headers := append(session.ExportHeaders(), statusHeader)
	rows := make([][]string, 0, len(session.Applicants))
	for i := range session.Applicants {
		a := &session.Applicants[i]
		row := make([]string, 0, len(headers))
		for _, h := range headers[:len(headers)-1] {
			row = append(row, a.Get(h))
		}
		row = append(row, string(a.Status))
		rows = append(rows, row)
	}

	switch strings.ToLower(filepath.Ext(output)) {
	case ".csv":
		err = exportCSV(output, headers, rows)
	case ".xlsx":
		err = exportXLSX(output, headers, rows)
	default:
		return common.NewUserError(
			fmt.Sprintf("unsupported export format %q; use .csv or .xlsx", filepath.Ext(output)),
			common.ErrUnsupportedFormat)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
		fmt.Sprintf("Exported %d applicants to %s", len(rows), output)))
	return err
}

func exportCSV(path string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return f.Close()
}

func exportXLSX(path string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Sheet1"
	all := append([][]string{headers}, rows...)
	for r, row := range all {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
