// Package ingest parses applicant spreadsheets into ordered flat
// records. It is the file-format boundary: everything downstream works
// on trimmed column-name to string-value maps and never sees the
// source format.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/csc-gandhinagar/stipend-flow/internal/common"
)

// Result is a parsed file: the ordered header list and the ordered row
// records. Wholly-empty rows are dropped; empty headers get synthetic
// "__empty_N" keys so positional data survives.
type Result struct {
	Headers []string
	Rows    []map[string]string
}

// SupportedExtensions lists the file formats Parse accepts.
var SupportedExtensions = []string{".csv", ".xlsx", ".xls"}

// Supported reports whether the file name carries a parseable extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// Parse reads and parses the file at path, dispatching on extension.
// A malformed file yields an error and no records.
func Parse(path string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		return ParseCSV(f)
	case ".xlsx":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		return ParseXLSX(f)
	case ".xls":
		return ParseXLS(path)
	default:
		return nil, common.NewUserError(
			fmt.Sprintf("unsupported file %q; use CSV, XLSX or XLS", filepath.Base(path)),
			common.ErrUnsupportedFormat)
	}
}

// ParseCSV parses CSV content with a header row.
func ParseCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are common in form exports

	grid, err := reader.ReadAll()
	if err != nil {
		return nil, common.NewUserError("failed to parse CSV file", fmt.Errorf("%w: %w", common.ErrParseFailure, err))
	}
	return fromGrid(grid), nil
}

// ParseXLSX parses the first sheet of an XLSX workbook.
func ParseXLSX(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, common.NewUserError("failed to parse Excel file", fmt.Errorf("%w: %w", common.ErrParseFailure, err))
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	grid, err := f.GetRows(sheet)
	if err != nil {
		return nil, common.NewUserError("failed to read Excel sheet", fmt.Errorf("%w: %w", common.ErrParseFailure, err))
	}
	return fromGrid(grid), nil
}

// ParseXLS parses the first sheet of a legacy XLS workbook.
func ParseXLS(path string) (*Result, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, common.NewUserError("failed to parse XLS file", fmt.Errorf("%w: %w", common.ErrParseFailure, err))
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, common.NewUserError("XLS file has no sheets", common.ErrParseFailure)
	}

	var grid [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		var cells []string
		for j := 0; j <= row.LastCol(); j++ {
			cells = append(cells, row.Col(j))
		}
		grid = append(grid, cells)
	}
	return fromGrid(grid), nil
}

// fromGrid converts a raw cell grid into header-keyed records.
func fromGrid(grid [][]string) *Result {
	if len(grid) == 0 {
		return &Result{}
	}

	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		clean := strings.TrimSpace(h)
		if clean == "" {
			clean = fmt.Sprintf("__empty_%d", i)
		}
		headers[i] = clean
	}

	var rows []map[string]string
	for _, line := range grid[1:] {
		record := make(map[string]string, len(headers))
		hasData := false
		for i, h := range headers {
			val := ""
			if i < len(line) {
				val = strings.TrimSpace(line[i])
			}
			record[h] = val
			if val != "" {
				hasData = true
			}
		}
		if hasData {
			rows = append(rows, record)
		}
	}

	return &Result{Headers: headers, Rows: rows}
}
