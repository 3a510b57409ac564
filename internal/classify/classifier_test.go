package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csc-gandhinagar/stipend-flow/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		birthPlace string
		want       model.Status
	}{
		{
			name:       "within gujarat approved",
			birthPlace: "Within Territory of Gujarat State",
			want:       model.StatusApproved,
		},
		{
			name:       "outside with domicile needs review",
			birthPlace: "Outside Gujarat State But Have Domicile Certificate",
			want:       model.StatusReview,
		},
		{
			name:       "outside without domicile rejected",
			birthPlace: "Outside Gujarat State and Do not have Domicile Certificate",
			want:       model.StatusRejected,
		},
		{
			name:       "unrecognized text pending",
			birthPlace: "Gandhinagar",
			want:       model.StatusPending,
		},
		{
			name:       "empty pending",
			birthPlace: "",
			want:       model.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(map[string]string{"Birth Place": tt.birthPlace})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyLooseBirthPlaceHeader(t *testing.T) {
	// A variant header containing "birth place" drives classification too.
	got := Classify(map[string]string{
		"Birth Place (as per certificate)": "Within Territory of Gujarat State",
	})
	assert.Equal(t, model.StatusApproved, got)
}

func TestProcessRecordsOrdering(t *testing.T) {
	rows := []map[string]string{
		{"Full Name": "A", "Birth Place": "Within Territory of Gujarat State"},
		{"Full Name": "B", "Birth Place": "Outside But Have Domicile"},
		{"Full Name": "C", "Birth Place": "Outside, Do not have domicile"},
		{"Full Name": "D", "Birth Place": "Outside State But Have Domicile"},
	}

	session := ProcessRecords([]string{"Full Name", "Birth Place"}, rows)
	require.Len(t, session.Applicants, 4)

	// Review rows come first, in their original relative order.
	assert.Equal(t, "B", session.Applicants[0].Get("Full Name"))
	assert.Equal(t, "D", session.Applicants[1].Get("Full Name"))
	assert.Equal(t, "A", session.Applicants[2].Get("Full Name"))
	assert.Equal(t, "C", session.Applicants[3].Get("Full Name"))

	assert.Equal(t, model.StatusReview, session.Applicants[0].Status)
	assert.Equal(t, model.StatusReview, session.Applicants[1].Status)
	assert.Equal(t, model.StatusApproved, session.Applicants[2].Status)
	assert.Equal(t, model.StatusRejected, session.Applicants[3].Status)
}

func TestProcessRecordsCanonicalizesRoll(t *testing.T) {
	rows := []map[string]string{
		{"Roll No": "101", "Birth Place": "Within Territory of Gujarat State"},
	}

	session := ProcessRecords([]string{"Roll No", "Birth Place"}, rows)
	require.Len(t, session.Applicants, 1)

	a := session.Applicants[0]
	assert.Equal(t, "101", a.Get(RollNumberKey))
	assert.False(t, a.Has("Roll No"), "alias column should be renamed away")
	assert.Equal(t, []string{RollNumberKey, "Birth Place"}, session.Headers)
}

func TestProcessRecordsSnapshotsOriginals(t *testing.T) {
	rows := []map[string]string{
		{"Full Name": "A", "Birth Place": "Within Territory of Gujarat State"},
	}

	session := ProcessRecords([]string{"Full Name", "Birth Place"}, rows)
	a := &session.Applicants[0]

	assert.Equal(t, a.Fields, a.OriginalFields)

	// The mirror is an independent copy until Set touches both.
	a.Fields["Full Name"] = "changed"
	assert.Equal(t, "A", a.OriginalFields["Full Name"])
}

func TestAppendRecords(t *testing.T) {
	session := ProcessRecords([]string{"Full Name", "Birth Place"}, []map[string]string{
		{"Full Name": "A", "Birth Place": "Within Territory of Gujarat State"},
		{"Full Name": "B", "Birth Place": "Outside But Have Domicile"},
	})

	added := AppendRecords(&session, []map[string]string{
		{"Full Name": "C"},
		{"Full Name": "D"},
	})
	require.Equal(t, 2, added)
	require.Len(t, session.Applicants, 4)

	// Appended rows are Approved and ids continue past the max.
	c := session.Applicants[2]
	d := session.Applicants[3]
	assert.Equal(t, model.StatusApproved, c.Status)
	assert.Equal(t, model.StatusApproved, d.Status)
	assert.Equal(t, 2, c.ID)
	assert.Equal(t, 3, d.ID)
}
