// Package report builds the month-end category reports: per-category
// applicant tables, gender-wise counts and stipend sums, grand totals,
// and the structured noting document handed to export collaborators.
// Everything here is a read-only projection of the working set.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/csc-gandhinagar/stipend-flow/internal/columns"
	"github.com/csc-gandhinagar/stipend-flow/internal/common"
	"github.com/csc-gandhinagar/stipend-flow/internal/model"
	"github.com/csc-gandhinagar/stipend-flow/internal/stipend"
)

// Categories are the reservation groups reported on, in annexure order.
var Categories = []string{"GENERAL", "SEBC", "SC", "ST"}

// Annexures maps each category to its annexure letter in the noting.
var Annexures = map[string]string{"GENERAL": "A", "SEBC": "B", "SC": "C", "ST": "D"}

// GenderTotals carries the per-gender rollup for one category.
type GenderTotals struct {
	Amount decimal.Decimal
	Count  int
}

// CategoryExport is the report output for one reservation category.
type CategoryExport struct {
	Eligible *model.Table
	Category string
	Full     model.Table
	Male     GenderTotals
	Female   GenderTotals
	Total    decimal.Decimal
	Count    int
}

// Monthly is the complete report payload for one selected month.
type Monthly struct {
	Month      string
	Categories []CategoryExport
	Summary    model.Table
	Document   model.ReportDocument
	GrandTotal decimal.Decimal
	TotalCount int
}

// resolvedKeys are the loosely-matched columns the report reads from.
type resolvedKeys struct {
	category   string
	gender     string
	name       string
	roll       string
	subCaste   string
	attendance string
	stipendKey string
}

// Build produces the monthly report for the given month token.
//
// Only applicants carrying an attendance percentage for the month are
// included; an applicant approved overall but without data for this
// month is excluded from this month's report. Fails without output when
// the month token does not resolve, no category column exists, or no
// applicant has attendance data for the month.
func Build(ws model.WorkingSet, monthToken string) (*Monthly, error) {
	month := columns.NormalizeMonth(monthToken)
	if month == "" {
		return nil, common.NewUserError(
			fmt.Sprintf("invalid month %q; use Jan/January or a month number (1-12)", monthToken),
			common.ErrInvalidMonth)
	}

	keys, err := resolveKeys(ws, month)
	if err != nil {
		return nil, err
	}

	hasAttendance := false
	for i := range ws {
		if ws[i].Has(keys.attendance) {
			hasAttendance = true
			break
		}
	}
	if !hasAttendance {
		return nil, common.NewUserError(
			fmt.Sprintf("no attendance data found for %s", month), common.ErrColumnNotFound)
	}

	m := &Monthly{Month: month, GrandTotal: decimal.Zero}
	var totalMale, totalFemale GenderTotals

	for _, cat := range Categories {
		export := buildCategory(ws, cat, month, keys)
		m.Categories = append(m.Categories, export)
		m.GrandTotal = m.GrandTotal.Add(export.Total)
		m.TotalCount += export.Count

		totalMale.Count += export.Male.Count
		totalMale.Amount = totalMale.Amount.Add(export.Male.Amount)
		totalFemale.Count += export.Female.Count
		totalFemale.Amount = totalFemale.Amount.Add(export.Female.Amount)
	}

	m.Summary = buildSummary(m.Categories, totalMale, totalFemale)
	m.Document = buildDocument(ws, m, keys)
	return m, nil
}

func resolveKeys(ws model.WorkingSet, month string) (resolvedKeys, error) {
	all := ws.AllKeys()

	keys := resolvedKeys{
		category: columns.FindFunc(all, func(lower string) bool {
			return strings.Contains(lower, "category") || strings.Contains(lower, "caste")
		}),
		gender: columns.FindFunc(all, func(lower string) bool {
			return strings.Contains(lower, "gender") || strings.Contains(lower, "sex")
		}),
		name: columns.FindFunc(all, func(lower string) bool {
			return strings.Contains(lower, "name") && !strings.Contains(lower, "username")
		}),
		roll: columns.Find(all, "roll"),
		subCaste: columns.FindFunc(all, func(lower string) bool {
			return strings.Contains(lower, "sub") && strings.Contains(lower, "cast")
		}),
		attendance: columns.ResolveMetricKey(all, month, columns.MetricPercent),
		stipendKey: columns.ResolveMetricKey(all, month, columns.MetricStipend),
	}

	if keys.category == "" {
		return keys, common.NewUserError("category column not found in data", common.ErrColumnNotFound)
	}
	return keys, nil
}

// inCategory matches the normalized category value exact-or-substring.
func inCategory(a *model.Applicant, categoryKey, cat string) bool {
	val := strings.ToUpper(strings.TrimSpace(a.Get(categoryKey)))
	return val == cat || strings.Contains(val, cat)
}

func isGender(a *model.Applicant, genderKey string, variants ...string) bool {
	val := strings.ToUpper(strings.TrimSpace(a.Get(genderKey)))
	for _, v := range variants {
		if val == v {
			return true
		}
	}
	return false
}

func buildCategory(ws model.WorkingSet, cat, month string, keys resolvedKeys) CategoryExport {
	isGeneral := cat == "GENERAL"

	var members []*model.Applicant
	for i := range ws {
		a := &ws[i]
		if inCategory(a, keys.category, cat) && a.Has(keys.attendance) {
			members = append(members, a)
		}
	}

	export := CategoryExport{Category: cat, Count: len(members), Total: decimal.Zero}

	headers := []string{"Sr. No", "Roll No", "Student name", "Gender"}
	if !isGeneral {
		headers = append(headers, "Sub Cast")
	}
	attHeader := fmt.Sprintf("Month (%s)", month)
	headers = append(headers, attHeader, "Stipend")

	var rows [][]string
	for i, a := range members {
		amount := stipend.ToAmount(a.Get(keys.stipendKey))
		export.Total = export.Total.Add(decimal.NewFromInt(amount))

		switch {
		case isGender(a, keys.gender, "M", "MALE"):
			export.Male.Count++
			export.Male.Amount = export.Male.Amount.Add(decimal.NewFromInt(amount))
		case isGender(a, keys.gender, "F", "FEMALE"):
			export.Female.Count++
			export.Female.Amount = export.Female.Amount.Add(decimal.NewFromInt(amount))
		}

		rows = append(rows, memberRow(i+1, a, keys, isGeneral, amount))
	}
	rows = append(rows, totalRow(isGeneral, export.Total))

	export.Full = model.Table{
		Title:   fmt.Sprintf("%s CATEGORY", cat),
		Headers: headers,
		Rows:    rows,
	}
	export.Eligible = buildEligible(members, keys, cat, isGeneral, headers)
	return export
}

func memberRow(sr int, a *model.Applicant, keys resolvedKeys, isGeneral bool, amount int64) []string {
	row := []string{
		strconv.Itoa(sr),
		a.Get(keys.roll),
		a.Get(keys.name),
		a.Get(keys.gender),
	}
	if !isGeneral {
		row = append(row, a.Get(keys.subCaste))
	}
	percent := a.Get(keys.attendance)
	if percent == "" {
		percent = "0%"
	}
	return append(row, percent, stipend.FormatAmount(amount))
}

func totalRow(isGeneral bool, total decimal.Decimal) []string {
	row := []string{"", "", "TOTAL", ""}
	if !isGeneral {
		row = append(row, "")
	}
	return append(row, "", stipend.FormatAmount(total.IntPart()))
}

// buildEligible restricts a category table to applicants whose stipend
// amount is above zero, renumbered from 1. Nil when nobody qualifies.
func buildEligible(members []*model.Applicant, keys resolvedKeys, cat string, isGeneral bool, headers []string) *model.Table {
	var rows [][]string
	total := decimal.Zero
	for _, a := range members {
		amount := stipend.ToAmount(a.Get(keys.stipendKey))
		if amount <= 0 {
			continue
		}
		total = total.Add(decimal.NewFromInt(amount))
		rows = append(rows, memberRow(len(rows)+1, a, keys, isGeneral, amount))
	}
	if len(rows) == 0 {
		return nil
	}
	rows = append(rows, totalRow(isGeneral, total))
	return &model.Table{
		Title:   fmt.Sprintf("%s CATEGORY (ELIGIBLE)", cat),
		Headers: headers,
		Rows:    rows,
	}
}

func buildSummary(categories []CategoryExport, totalMale, totalFemale GenderTotals) model.Table {
	headers := []string{"Category", "Male No", "Male Amount", "Female No", "Female Amount", "Total Candidates", "Amount (Rs.)"}

	var rows [][]string
	for _, c := range categories {
		rows = append(rows, []string{
			c.Category,
			strconv.Itoa(c.Male.Count),
			stipend.FormatAmount(c.Male.Amount.IntPart()),
			strconv.Itoa(c.Female.Count),
			stipend.FormatAmount(c.Female.Amount.IntPart()),
			strconv.Itoa(c.Count),
			stipend.FormatAmount(c.Male.Amount.Add(c.Female.Amount).IntPart()),
		})
	}

	rows = append(rows, []string{
		"Total",
		strconv.Itoa(totalMale.Count),
		stipend.FormatAmount(totalMale.Amount.IntPart()),
		strconv.Itoa(totalFemale.Count),
		stipend.FormatAmount(totalFemale.Amount.IntPart()),
		strconv.Itoa(totalMale.Count + totalFemale.Count),
		stipend.FormatAmount(totalMale.Amount.Add(totalFemale.Amount).IntPart()),
	})

	return model.Table{Title: "Grand Total of All Categories", Headers: headers, Rows: rows}
}
