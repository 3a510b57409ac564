// Package columns resolves semantically-named columns in loosely-named
// spreadsheet headers. Form-generated exports rarely agree on exact
// header text, so every lookup normalizes casing and punctuation and
// runs through a central alias table. Resolution is pure: a miss returns
// the zero value and the caller treats the field as absent.
package columns

import (
	"regexp"
	"strings"
)

// Months lists the canonical 3-letter month tokens used to namespace
// per-month metric fields ("Jan Total", "Jan Attended", ...).
var Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// monthAliases maps normalized month spellings to canonical tokens.
// Accepts full names, 3-letter abbreviations, "sept", and bare or
// zero-padded month numbers.
var monthAliases = map[string]string{
	"jan": "Jan", "january": "Jan", "1": "Jan", "01": "Jan",
	"feb": "Feb", "february": "Feb", "2": "Feb", "02": "Feb",
	"mar": "Mar", "march": "Mar", "3": "Mar", "03": "Mar",
	"apr": "Apr", "april": "Apr", "4": "Apr", "04": "Apr",
	"may": "May", "5": "May", "05": "May",
	"jun": "Jun", "june": "Jun", "6": "Jun", "06": "Jun",
	"jul": "Jul", "july": "Jul", "7": "Jul", "07": "Jul",
	"aug": "Aug", "august": "Aug", "8": "Aug", "08": "Aug",
	"sep": "Sep", "sept": "Sep", "september": "Sep", "9": "Sep", "09": "Sep",
	"oct": "Oct", "october": "Oct", "10": "Oct",
	"nov": "Nov", "november": "Nov", "11": "Nov",
	"dec": "Dec", "december": "Dec", "12": "Dec",
}

// rollAliases are the normalized forms a roll-number column shows up as
// across the spreadsheet variants we have seen.
var rollAliases = map[string]bool{
	"rollnumber":                true,
	"rollno":                    true,
	"rollid":                    true,
	"studentno":                 true,
	"rollnoasperattendancemuster": true,
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// Normalize lower-cases a header and strips everything that is not a
// letter or digit, so "Roll No. (as per muster)" and "rollnoaspermuster"
// compare equal.
func Normalize(key string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(strings.TrimSpace(key)), "")
}

// NormalizeMonth resolves a free-text month token to its canonical
// 3-letter form, or "" when the token is not recognizable as a month.
func NormalizeMonth(value string) string {
	token := strings.ToLower(strings.TrimSpace(value))
	token = strings.ReplaceAll(token, ".", "")
	return monthAliases[token]
}

// IsRollAlias reports whether the key normalizes to a known roll-number
// column spelling.
func IsRollAlias(key string) bool {
	return rollAliases[Normalize(key)]
}

// ResolveRoll returns the first key in keys that is a roll-number alias,
// or "" when none matches.
func ResolveRoll(keys []string) string {
	for _, k := range keys {
		if IsRollAlias(k) {
			return k
		}
	}
	return ""
}

// RollOf resolves the roll-number value from a field map, preferring the
// canonical "Roll Number" key and falling back to any alias. The value
// is trimmed; matching against attendance files is an exact string
// comparison on this form.
func RollOf(fields map[string]string) string {
	if v, ok := fields["Roll Number"]; ok {
		return strings.TrimSpace(v)
	}
	for k, v := range fields {
		if IsRollAlias(k) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Metric names a per-month attendance metric.
type Metric string

// The four metrics tracked per applicant per month.
const (
	MetricTotal    Metric = "total"
	MetricAttended Metric = "attended"
	MetricPercent  Metric = "%"
	MetricStipend  Metric = "stipend"
)

// MetricKey builds the canonical column key for a month metric, e.g.
// MetricKey("Jan", MetricTotal) == "Jan Total".
func MetricKey(month string, metric Metric) string {
	switch metric {
	case MetricTotal:
		return month + " Total"
	case MetricAttended:
		return month + " Attended"
	case MetricPercent:
		return month + " %"
	case MetricStipend:
		return month + " Stipend"
	}
	return ""
}

var metricKeyPattern = regexp.MustCompile(`(?i)^(.+?)\s*(Total|Attended|Stipend|%)\s*$`)

// ParsedMetricKey is the result of decomposing a month-metric column key.
type ParsedMetricKey struct {
	Month  string
	Metric Metric
}

// ParseMetricKey decomposes keys like "Jan Total", "january attended" or
// "09 %" into a canonical month token and metric. Returns nil for keys
// that do not parse or whose label is not a recognizable month.
func ParseMetricKey(key string) *ParsedMetricKey {
	m := metricKeyPattern.FindStringSubmatch(strings.TrimSpace(key))
	if m == nil {
		return nil
	}
	month := NormalizeMonth(m[1])
	if month == "" {
		return nil
	}
	return &ParsedMetricKey{Month: month, Metric: Metric(strings.ToLower(m[2]))}
}

// ResolveMetricKey finds the actual column key carrying the given metric
// for the given month. The exact canonical key wins when present;
// otherwise any key that parses to the same month and metric is used.
// Returns the canonical key when nothing matches, so writers create the
// clean form.
func ResolveMetricKey(keys []string, month string, metric Metric) string {
	canonical := MetricKey(month, metric)
	for _, k := range keys {
		if k == canonical {
			return canonical
		}
	}
	for _, k := range keys {
		parsed := ParseMetricKey(k)
		if parsed != nil && parsed.Month == month && parsed.Metric == metric {
			return k
		}
	}
	return canonical
}

// HasMetricKey reports whether any key in keys resolves to the given
// month metric, without falling back to the canonical spelling.
func HasMetricKey(keys []string, month string, metric Metric) bool {
	canonical := MetricKey(month, metric)
	for _, k := range keys {
		if k == canonical {
			return true
		}
		parsed := ParseMetricKey(k)
		if parsed != nil && parsed.Month == month && parsed.Metric == metric {
			return true
		}
	}
	return false
}

// Find returns the first key whose lower-cased form contains the
// lower-cased term, or "".
func Find(keys []string, term string) string {
	lower := strings.ToLower(term)
	for _, k := range keys {
		if strings.Contains(strings.ToLower(k), lower) {
			return k
		}
	}
	return ""
}

// FindExact returns the first key whose normalized form equals the
// normalized target, or "".
func FindExact(keys []string, target string) string {
	want := Normalize(target)
	for _, k := range keys {
		if Normalize(k) == want {
			return k
		}
	}
	return ""
}

// FindFunc returns the first key satisfying match, or "".
func FindFunc(keys []string, match func(lower string) bool) string {
	for _, k := range keys {
		if match(strings.ToLower(k)) {
			return k
		}
	}
	return ""
}

// Keys returns the keys of a field map. Order is unspecified; callers
// needing determinism sort or use the session header list.
func Keys(fields map[string]string) []string {
	out := make([]string, 0, len(fields))
	for k := range fields {
		out = append(out, k)
	}
	return out
}
