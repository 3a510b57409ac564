// Package classify derives the initial review status of ingested
// applicants and prepares the working set for the reviewer queue.
package classify

import (
	"sort"
	"strings"

	"github.com/csc-gandhinagar/stipend-flow/internal/columns"
	"github.com/csc-gandhinagar/stipend-flow/internal/model"
)

// RollNumberKey is the canonical roll-number column every downstream
// component relies on. Ingestion renames any recognized alias to it.
const RollNumberKey = "Roll Number"

// birthPlaceKey is the default column driving eligibility when no
// header contains "birth place".
const birthPlaceKey = "Birth Place"

// Classify maps one applicant's raw fields to a review status using the
// birth place / domicile text. Substring tests, first match wins:
//
//	"Within Territory of Gujarat State"  -> Approved
//	"Outside" + "Have Domicile"          -> Review (needs a human call)
//	"Outside" + "Do not have"            -> Rejected
//	anything else                        -> Pending
func Classify(fields map[string]string) model.Status {
	key := columns.Find(columns.Keys(fields), "birth place")
	if key == "" {
		key = birthPlaceKey
	}
	birthPlace := fields[key]

	switch {
	case strings.Contains(birthPlace, "Within Territory of Gujarat State"):
		return model.StatusApproved
	case strings.Contains(birthPlace, "Outside") && strings.Contains(birthPlace, "Have Domicile"):
		return model.StatusReview
	case strings.Contains(birthPlace, "Outside") && strings.Contains(birthPlace, "Do not have"):
		return model.StatusRejected
	default:
		return model.StatusPending
	}
}

// ProcessRecords turns freshly ingested rows into a session: assigns
// sequential ids, canonicalizes the roll-number column, snapshots the
// export mirror, classifies every record, and stable-sorts Review rows
// to the front so reviewers see ambiguous cases first.
func ProcessRecords(headers []string, rows []map[string]string) model.Session {
	applicants := make(model.WorkingSet, 0, len(rows))
	for i, row := range rows {
		fields := canonicalizeRoll(row)
		a := model.Applicant{
			ID:     i,
			Fields: fields,
			Status: Classify(fields),
		}
		a.OriginalFields = snapshot(fields)
		applicants = append(applicants, a)
	}

	// Review first, relative order preserved within each partition.
	sort.SliceStable(applicants, func(i, j int) bool {
		return applicants[i].Status == model.StatusReview && applicants[j].Status != model.StatusReview
	})

	return model.Session{
		Headers:    canonicalizeHeaders(headers),
		Applicants: applicants,
	}
}

// AppendRecords appends rows from a secondary bulk import to an existing
// session. Imported rows are taken as-is and marked Approved; ids
// continue from the current maximum.
func AppendRecords(session *model.Session, rows []map[string]string) int {
	nextID := session.Applicants.NextID()
	for i, row := range rows {
		fields := snapshot(row)
		a := model.Applicant{
			ID:     nextID + i,
			Fields: fields,
			Status: model.StatusApproved,
		}
		a.OriginalFields = snapshot(fields)
		session.Applicants = append(session.Applicants, a)
	}
	return len(rows)
}

// canonicalizeRoll renames a recognized roll-number alias column to
// RollNumberKey, dropping the original key.
func canonicalizeRoll(row map[string]string) map[string]string {
	out := snapshot(row)
	rollKey := columns.ResolveRoll(columns.Keys(out))
	if rollKey != "" && rollKey != RollNumberKey {
		out[RollNumberKey] = out[rollKey]
		delete(out, rollKey)
	}
	return out
}

func canonicalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		if columns.IsRollAlias(h) && h != RollNumberKey {
			out[i] = RollNumberKey
			continue
		}
		out[i] = h
	}
	return out
}

func snapshot(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
