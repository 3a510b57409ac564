package attendance

import (
	"fmt"
	"strings"

	"github.com/csc-gandhinagar/stipend-flow/internal/columns"
	"github.com/csc-gandhinagar/stipend-flow/internal/common"
	"github.com/csc-gandhinagar/stipend-flow/internal/model"
	"github.com/csc-gandhinagar/stipend-flow/internal/stipend"
)

// AddFieldAll adds a custom field with the same value to every applicant
// in the set, mirrored into the export snapshot.
func AddFieldAll(ws model.WorkingSet, name, value string) (model.WorkingSet, error) {
	if strings.TrimSpace(name) == "" {
		return nil, common.NewUserError("field name must not be empty", common.ErrColumnNotFound)
	}

	updated := ws.Clone()
	for i := range updated {
		updated[i].Set(name, value)
	}
	return updated, nil
}

// SetField edits a single cell on one applicant. When the key is a
// month's Total or Attended column, the percentage and stipend for that
// month are recomputed from the freshest pair before the set is
// considered consistent.
func SetField(ws model.WorkingSet, id int, key, value string) (model.WorkingSet, error) {
	if ws.ByID(id) == nil {
		return nil, common.NewUserError(fmt.Sprintf("no applicant with id %d", id), common.ErrNotFound)
	}

	updated := ws.Clone()
	a := updated.ByID(id)
	a.Set(key, value)
	recomputeForKey(a, key)
	return updated, nil
}

// recomputeForKey refreshes the derived month metrics when an edit
// touched a "{Month} Total" or "{Month} Attended" column.
func recomputeForKey(a *model.Applicant, key string) {
	if !strings.Contains(key, "Total") && !strings.Contains(key, "Attended") {
		return
	}
	parsed := columns.ParseMetricKey(key)
	if parsed == nil || (parsed.Metric != columns.MetricTotal && parsed.Metric != columns.MetricAttended) {
		return
	}

	month := parsed.Month
	total := a.Get(columns.MetricKey(month, columns.MetricTotal))
	attended := a.Get(columns.MetricKey(month, columns.MetricAttended))
	if total == "" || attended == "" {
		return
	}

	percent, amount := stipend.Calculate(total, attended)
	a.Set(columns.MetricKey(month, columns.MetricPercent), percent)
	a.Set(columns.MetricKey(month, columns.MetricStipend), amount)
}
