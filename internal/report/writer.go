package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/csc-gandhinagar/stipend-flow/internal/model"
)

// WriteCSVDir writes the monthly report as a directory of CSV files plus
// the noting document as plain text. It returns the paths written.
func WriteCSVDir(m *Monthly, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	month := strings.ToLower(m.Month)
	var written []string

	write := func(name string, t *model.Table) error {
		path := filepath.Join(dir, name)
		if err := writeTableCSV(path, t); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	if err := write(fmt.Sprintf("summary_%s.csv", month), &m.Summary); err != nil {
		return nil, err
	}
	for i := range m.Categories {
		c := &m.Categories[i]
		if c.Count == 0 {
			continue
		}
		cat := strings.ToLower(c.Category)
		if err := write(fmt.Sprintf("%s_full_%s.csv", cat, month), &c.Full); err != nil {
			return nil, err
		}
		if c.Eligible != nil {
			if err := write(fmt.Sprintf("%s_eligible_%s.csv", cat, month), c.Eligible); err != nil {
				return nil, err
			}
		}
	}

	notingPath := filepath.Join(dir, fmt.Sprintf("noting_%s.txt", month))
	if err := os.WriteFile(notingPath, []byte(RenderDocument(m.Document)), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write noting document: %w", err)
	}
	written = append(written, notingPath)

	return written, nil
}

func writeTableCSV(path string, t *model.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write headers to %s: %w", path, err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return f.Close()
}

// WriteWorkbook writes the monthly report as a single XLSX workbook:
// a summary sheet, one sheet per non-empty category, and the noting
// document on its own sheet.
func WriteWorkbook(m *Monthly, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}
	if err := writeTableSheet(f, "Summary", &m.Summary); err != nil {
		return err
	}

	for i := range m.Categories {
		c := &m.Categories[i]
		if c.Count == 0 {
			continue
		}
		if _, err := f.NewSheet(c.Category); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", c.Category, err)
		}
		if err := writeTableSheet(f, c.Category, &c.Full); err != nil {
			return err
		}
	}

	if err := writeDocumentSheet(f, m.Document); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeTableSheet(f *excelize.File, sheet string, t *model.Table) error {
	rows := make([][]string, 0, len(t.Rows)+2)
	if t.Title != "" {
		rows = append(rows, []string{t.Title})
	}
	rows = append(rows, t.Headers)
	rows = append(rows, t.Rows...)

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

func writeDocumentSheet(f *excelize.File, doc model.ReportDocument) error {
	const sheet = "Noting"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to add noting sheet: %w", err)
	}

	row := 1
	writeLine := func(cells []string) error {
		for c, value := range cells {
			cell, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				return fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s!%s: %w", sheet, cell, err)
			}
		}
		row++
		return nil
	}

	if err := writeLine([]string{doc.Title}); err != nil {
		return err
	}
	row++

	for _, s := range doc.Sections {
		if s.Text != "" {
			if err := writeLine([]string{s.Text}); err != nil {
				return err
			}
		}
		if s.Table != nil {
			if err := writeLine(s.Table.Headers); err != nil {
				return err
			}
			for _, r := range s.Table.Rows {
				if err := writeLine(r); err != nil {
					return err
				}
			}
		}
		row++
	}
	return nil
}

// RenderDocument renders the noting report as plain text. Tables are
// laid out with tab-separated cells.
func RenderDocument(doc model.ReportDocument) string {
	var b strings.Builder
	b.WriteString(doc.Title + "\n\n")

	for _, s := range doc.Sections {
		if s.Text != "" {
			b.WriteString(s.Text + "\n")
		}
		if s.Table != nil {
			b.WriteString(strings.Join(s.Table.Headers, "\t") + "\n")
			for _, row := range s.Table.Rows {
				b.WriteString(strings.Join(row, "\t") + "\n")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
