// Package model defines the core domain models used throughout the application.
package model

import "sort"

// Status indicates where an applicant sits in the review workflow.
type Status string

// Review workflow statuses.
const (
	StatusApproved Status = "Approved"
	StatusReview   Status = "Review"
	StatusRejected Status = "Rejected"
	StatusPending  Status = "Pending"
)

// ValidStatus reports whether s is one of the known workflow statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusApproved, StatusReview, StatusRejected, StatusPending:
		return true
	}
	return false
}

// CanTransition reports whether a reviewer action may move an applicant
// from one status to another. Only Review rows are actionable; every
// other status is terminal for the reviewer path.
func CanTransition(from, to Status) bool {
	if from != StatusReview {
		return false
	}
	return to == StatusApproved || to == StatusRejected
}

// Applicant is one ingested spreadsheet row plus its review state.
//
// Fields holds the live column values. OriginalFields mirrors Fields so
// exports reproduce clean headers; every mutation of a month metric or
// custom field must be written to both maps.
type Applicant struct {
	Fields         map[string]string
	OriginalFields map[string]string
	ID             int
	Status         Status
}

// Clone returns a deep copy of the applicant.
func (a *Applicant) Clone() Applicant {
	c := Applicant{
		ID:             a.ID,
		Status:         a.Status,
		Fields:         make(map[string]string, len(a.Fields)),
		OriginalFields: make(map[string]string, len(a.OriginalFields)),
	}
	for k, v := range a.Fields {
		c.Fields[k] = v
	}
	for k, v := range a.OriginalFields {
		c.OriginalFields[k] = v
	}
	return c
}

// Set writes a field value into both the live map and the export mirror.
func (a *Applicant) Set(key, value string) {
	if a.Fields == nil {
		a.Fields = make(map[string]string)
	}
	if a.OriginalFields == nil {
		a.OriginalFields = make(map[string]string)
	}
	a.Fields[key] = value
	a.OriginalFields[key] = value
}

// Get returns the live value for key, or "" when absent.
func (a *Applicant) Get(key string) string {
	return a.Fields[key]
}

// Has reports whether the live map carries the key at all.
func (a *Applicant) Has(key string) bool {
	_, ok := a.Fields[key]
	return ok
}

// WorkingSet is the ordered collection of applicants under review.
type WorkingSet []Applicant

// Clone deep-copies the whole set. Mutating operations work on a clone
// and swap it in only on success, so a failed operation never leaves the
// caller's set partially updated.
func (ws WorkingSet) Clone() WorkingSet {
	out := make(WorkingSet, len(ws))
	for i := range ws {
		out[i] = ws[i].Clone()
	}
	return out
}

// NextID returns the next unused applicant id. IDs are assigned by
// sequence position at ingestion and never reused after deletion.
func (ws WorkingSet) NextID() int {
	maxID := -1
	for i := range ws {
		if ws[i].ID > maxID {
			maxID = ws[i].ID
		}
	}
	return maxID + 1
}

// ByID returns a pointer to the applicant with the given id, or nil.
func (ws WorkingSet) ByID(id int) *Applicant {
	for i := range ws {
		if ws[i].ID == id {
			return &ws[i]
		}
	}
	return nil
}

// Counts tallies applicants per status.
func (ws WorkingSet) Counts() map[Status]int {
	counts := make(map[Status]int, 4)
	for i := range ws {
		counts[ws[i].Status]++
	}
	return counts
}

// WithStatus returns the applicants currently in the given status,
// preserving set order.
func (ws WorkingSet) WithStatus(s Status) []Applicant {
	var out []Applicant
	for i := range ws {
		if ws[i].Status == s {
			out = append(out, ws[i])
		}
	}
	return out
}

// AllKeys returns the union of field keys across the set, sorted so the
// result is deterministic. Callers that need the ingested column order
// use Session.Headers instead.
func (ws WorkingSet) AllKeys() []string {
	seen := make(map[string]bool)
	var keys []string
	for i := range ws {
		for k := range ws[i].Fields {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// Session couples the working set with the ordered header list from the
// primary ingest, so exports can reproduce the original column order.
type Session struct {
	Headers    []string
	Applicants WorkingSet
}

// ExportHeaders returns the ingested headers followed by any keys added
// after ingestion (month metrics, custom fields), the latter sorted.
func (s *Session) ExportHeaders() []string {
	known := make(map[string]bool, len(s.Headers))
	out := make([]string, 0, len(s.Headers))
	for _, h := range s.Headers {
		known[h] = true
		out = append(out, h)
	}
	var extras []string
	for _, k := range s.Applicants.AllKeys() {
		if !known[k] {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	return append(out, extras...)
}
