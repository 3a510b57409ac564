package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"review to approved", StatusReview, StatusApproved, true},
		{"review to rejected", StatusReview, StatusRejected, true},
		{"review to pending", StatusReview, StatusPending, false},
		{"approved is terminal", StatusApproved, StatusRejected, false},
		{"rejected is terminal", StatusRejected, StatusApproved, false},
		{"pending is not actionable", StatusPending, StatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestApplicantSetMirrors(t *testing.T) {
	a := Applicant{}
	a.Set("Jan Total", "20")

	assert.Equal(t, "20", a.Fields["Jan Total"])
	assert.Equal(t, "20", a.OriginalFields["Jan Total"])
}

func TestApplicantCloneIsIndependent(t *testing.T) {
	a := Applicant{ID: 1, Status: StatusReview}
	a.Set("Full Name", "Amit")

	c := a.Clone()
	c.Set("Full Name", "Changed")
	c.Status = StatusApproved

	assert.Equal(t, "Amit", a.Get("Full Name"))
	assert.Equal(t, StatusReview, a.Status)
}

func TestWorkingSetCloneIsIndependent(t *testing.T) {
	ws := WorkingSet{{ID: 0, Fields: map[string]string{"A": "1"}, OriginalFields: map[string]string{"A": "1"}}}

	clone := ws.Clone()
	clone[0].Set("A", "2")

	assert.Equal(t, "1", ws[0].Get("A"))
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 0, WorkingSet{}.NextID())

	ws := WorkingSet{{ID: 0}, {ID: 7}, {ID: 3}}
	assert.Equal(t, 8, ws.NextID())
}

func TestCountsAndWithStatus(t *testing.T) {
	ws := WorkingSet{
		{ID: 0, Status: StatusApproved},
		{ID: 1, Status: StatusReview},
		{ID: 2, Status: StatusReview},
	}

	counts := ws.Counts()
	assert.Equal(t, 1, counts[StatusApproved])
	assert.Equal(t, 2, counts[StatusReview])

	review := ws.WithStatus(StatusReview)
	assert.Len(t, review, 2)
	assert.Equal(t, 1, review[0].ID)
	assert.Equal(t, 2, review[1].ID)
}

func TestExportHeaders(t *testing.T) {
	s := Session{
		Headers: []string{"Full Name", "Roll Number"},
		Applicants: WorkingSet{
			{ID: 0, Fields: map[string]string{
				"Full Name": "A", "Roll Number": "1",
				"Jan Total": "20", "Bank Account": "x",
			}},
		},
	}

	// Ingested order first, post-ingest keys sorted after.
	assert.Equal(t,
		[]string{"Full Name", "Roll Number", "Bank Account", "Jan Total"},
		s.ExportHeaders())
}
