// Package attendance merges monthly attendance data into the working
// set and keeps the derived percentage and stipend fields consistent.
//
// Every entry point follows the same shape: clone the set, apply the
// whole batch of updates to the clone, and return it. A failed
// operation returns the error before anything is swapped in, so the
// caller's set is never left partially mutated.
package attendance

import (
	"fmt"
	"strings"

	"github.com/csc-gandhinagar/stipend-flow/internal/columns"
	"github.com/csc-gandhinagar/stipend-flow/internal/common"
	"github.com/csc-gandhinagar/stipend-flow/internal/model"
	"github.com/csc-gandhinagar/stipend-flow/internal/stipend"
)

// ApplyTotalToAll sets the month's total-days value on every applicant
// that already has attendance data for that month, recomputing the
// derived fields. Applicants without a usable Attended value are
// skipped: there is nothing to compute against, and their Total stays
// unset. Returns the updated set and the number of applicants touched.
func ApplyTotalToAll(ws model.WorkingSet, monthToken, totalDays string) (model.WorkingSet, int, error) {
	month := columns.NormalizeMonth(monthToken)
	if month == "" {
		return nil, 0, common.NewUserError(
			fmt.Sprintf("invalid month %q; use Jan/January or a month number (1-12)", monthToken),
			common.ErrInvalidMonth)
	}

	keys := ws.AllKeys()
	totalKey := columns.ResolveMetricKey(keys, month, columns.MetricTotal)
	attendedKey := columns.ResolveMetricKey(keys, month, columns.MetricAttended)

	if !columns.HasMetricKey(keys, month, columns.MetricAttended) {
		return nil, 0, common.NewUserError(
			fmt.Sprintf("no %q data found; import or add attendance for %s first", attendedKey, month),
			common.ErrColumnNotFound)
	}

	updated := ws.Clone()
	count := 0
	for i := range updated {
		a := &updated[i]
		attended, ok := a.Fields[attendedKey]
		if !ok || strings.TrimSpace(attended) == "" {
			continue
		}
		percent, amount := stipend.Calculate(totalDays, attended)
		a.Set(totalKey, totalDays)
		a.Set(columns.MetricKey(month, columns.MetricPercent), percent)
		a.Set(columns.MetricKey(month, columns.MetricStipend), amount)
		count++
	}

	return updated, count, nil
}

// SetForAll broadcasts identical attendance metrics for one month to
// every applicant in the set. The month token must resolve through the
// alias table or the operation fails and the set is untouched.
func SetForAll(ws model.WorkingSet, monthToken, totalDays, attended string) (model.WorkingSet, error) {
	month := columns.NormalizeMonth(monthToken)
	if month == "" {
		return nil, common.NewUserError(
			fmt.Sprintf("invalid month %q; use Jan/January or a month number (1-12)", monthToken),
			common.ErrInvalidMonth)
	}

	percent, amount := stipend.Calculate(totalDays, attended)

	updated := ws.Clone()
	for i := range updated {
		a := &updated[i]
		a.Set(columns.MetricKey(month, columns.MetricTotal), totalDays)
		a.Set(columns.MetricKey(month, columns.MetricAttended), attended)
		a.Set(columns.MetricKey(month, columns.MetricPercent), percent)
		a.Set(columns.MetricKey(month, columns.MetricStipend), amount)
	}

	return updated, nil
}

// bundle accumulates the metric fields staged for one roll number.
type bundle map[string]string

// MergeFile merges a second ingested attendance file into the set.
//
// Each attendance row contributes one month's metrics for one roll
// number; rows missing a resolvable roll, month, total or attended value
// are skipped. Staged bundles are then field-merged into matching
// applicants, so months not present in the file are preserved untouched.
//
// A zero matched count is not an error: it usually means the roll-number
// columns of the two files disagree, and the caller should warn
// distinctly rather than report success.
func MergeFile(ws model.WorkingSet, rows []map[string]string) (model.WorkingSet, int) {
	staged := make(map[string]bundle)

	for _, row := range rows {
		keys := columns.Keys(row)

		rollKey := columns.ResolveRoll(keys)
		if rollKey == "" {
			continue
		}
		roll := strings.TrimSpace(row[rollKey])
		if roll == "" {
			continue
		}

		monthKey := columns.FindExact(keys, "month")
		totalKey := columns.FindFunc(keys, func(lower string) bool {
			return strings.Contains(lower, "total") || strings.Contains(lower, "working")
		})
		// Attended must not collide with the total/working column.
		attendedKey := columns.FindFunc(keys, func(lower string) bool {
			return (strings.Contains(lower, "attended") || strings.Contains(lower, "present")) &&
				!strings.Contains(lower, "total") && !strings.Contains(lower, "working")
		})

		if monthKey == "" || totalKey == "" || attendedKey == "" {
			continue
		}

		month := columns.NormalizeMonth(row[monthKey])
		total := row[totalKey]
		attended := row[attendedKey]
		if month == "" || total == "" || attended == "" {
			continue
		}

		b, ok := staged[roll]
		if !ok {
			b = make(bundle)
			staged[roll] = b
		}

		percent, amount := stipend.Calculate(total, attended)
		b[columns.MetricKey(month, columns.MetricTotal)] = total
		b[columns.MetricKey(month, columns.MetricAttended)] = attended
		b[columns.MetricKey(month, columns.MetricPercent)] = percent
		b[columns.MetricKey(month, columns.MetricStipend)] = amount
	}

	updated := ws.Clone()
	matched := 0
	for i := range updated {
		a := &updated[i]
		roll := columns.RollOf(a.Fields)
		b, ok := staged[roll]
		if !ok || roll == "" {
			continue
		}
		for k, v := range b {
			a.Set(k, v)
		}
		matched++
	}

	return updated, matched
}
