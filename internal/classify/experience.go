package classify

import (
	"strconv"
	"strings"

	"github.com/csc-gandhinagar/stipend-flow/internal/columns"
	"github.com/csc-gandhinagar/stipend-flow/internal/common"
	"github.com/csc-gandhinagar/stipend-flow/internal/model"
)

// MarksKey is the column added by the experience pipeline.
const MarksKey = "Marks"

// Experience is a parsed "years_months_days" value.
type Experience struct {
	Years  int
	Months int
	Days   int
}

// ParseExperience parses strings like "10_5_1". Anything malformed
// parses as zero experience rather than failing the row.
func ParseExperience(value string) Experience {
	parts := strings.Split(strings.TrimSpace(value), "_")
	if len(parts) != 3 {
		return Experience{}
	}
	return Experience{
		Years:  atoiOrZero(parts[0]),
		Months: atoiOrZero(parts[1]),
		Days:   atoiOrZero(parts[2]),
	}
}

// Marks awards experience marks on the 0/5/10 scale:
// under 3 years gets 0, 3 to 5 years inclusive gets 5, and anything
// over 5 years, even by a day, gets 10.
func Marks(value string) int {
	exp := ParseExperience(value)
	// years*10000 + months*100 + days orders mixed units correctly:
	// 3_0_0 = 30000, 5_0_0 = 50000, 5_0_1 = 50001.
	v := exp.Years*10000 + exp.Months*100 + exp.Days
	switch {
	case v < 30000:
		return 0
	case v <= 50000:
		return 5
	default:
		return 10
	}
}

// ProcessExperienceRecords builds a session from an experience-based
// import: every row gets a Marks column computed from its experience
// value and is marked Approved. Fails without touching anything when no
// experience column exists.
func ProcessExperienceRecords(headers []string, rows []map[string]string) (model.Session, error) {
	var keys []string
	if len(rows) > 0 {
		keys = columns.Keys(rows[0])
	}
	expKey := columns.Find(keys, "experience")
	if expKey == "" {
		return model.Session{}, common.NewUserError(
			`experience column not found; ensure the file has a column named "experience"`, common.ErrColumnNotFound)
	}

	applicants := make(model.WorkingSet, 0, len(rows))
	for i, row := range rows {
		fields := snapshot(row)
		fields[MarksKey] = strconv.Itoa(Marks(fields[expKey]))
		a := model.Applicant{
			ID:     i,
			Fields: fields,
			Status: model.StatusApproved,
		}
		a.OriginalFields = snapshot(fields)
		applicants = append(applicants, a)
	}

	outHeaders := make([]string, 0, len(headers)+1)
	outHeaders = append(outHeaders, headers...)
	outHeaders = append(outHeaders, MarksKey)

	return model.Session{Headers: outHeaders, Applicants: applicants}, nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
