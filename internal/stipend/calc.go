// Package stipend computes attendance percentages and stipend amounts.
// The formula lives here and nowhere else; every merge and edit path
// delegates so the derived fields can never drift between callers.
package stipend

import (
	"strconv"
	"strings"
)

// MonthlyAmount is the fixed award for a qualifying month, in rupees.
const MonthlyAmount = "2000"

// Threshold is the attendance percentage an applicant must exceed to
// qualify. Strictly greater-than: exactly 60.0% does not qualify.
const Threshold = 60.0

// Calculate derives the attendance percentage and stipend amount for one
// applicant month. Inputs are raw spreadsheet strings; thousands
// separators are tolerated. Unparseable input or a zero total yields
// ("0.0%", "0").
func Calculate(total, attended string) (percent, amount string) {
	t, okT := parseNumber(total)
	a, okA := parseNumber(attended)
	if !okT || !okA || t == 0 {
		return "0.0%", "0"
	}

	pct := a / t * 100
	percent = strconv.FormatFloat(pct, 'f', 1, 64) + "%"
	if pct > Threshold {
		return percent, MonthlyAmount
	}
	return percent, "0"
}

// ToAmount coerces a stipend value back to a number for aggregation.
// Accepts the locale-formatted form produced by FormatAmount ("2,000")
// and returns 0 for anything unparseable, mirroring Calculate's
// defaults.
func ToAmount(value string) int64 {
	n, ok := parseNumber(value)
	if !ok {
		return 0
	}
	return int64(n)
}

// FormatAmount renders an amount with thousands separators for display
// and export. ToAmount(FormatAmount(n)) == n for all n >= 0.
func FormatAmount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func parseNumber(value string) (float64, bool) {
	normalized := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if normalized == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
