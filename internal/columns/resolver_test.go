package columns

import "testing"

func TestNormalizeMonth(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jan", "Jan"},
		{"january", "Jan"},
		{"JANUARY", "Jan"},
		{"1", "Jan"},
		{"01", "Jan"},
		{"sept", "Sep"},
		{"Sep.", "Sep"},
		{"09", "Sep"},
		{"12", "Dec"},
		{" may ", "May"},
		{"", ""},
		{"13", ""},
		{"janvier", ""},
	}

	for _, tt := range tests {
		if got := NormalizeMonth(tt.in); got != tt.want {
			t.Errorf("NormalizeMonth(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Roll Number", "rollnumber"},
		{"Roll No. (as per attendance muster)", "rollnoasperattendancemuster"},
		{"  Student-No  ", "studentno"},
		{"GENDER", "gender"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveRoll(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"canonical", []string{"Name", "Roll Number"}, "Roll Number"},
		{"alias rollno", []string{"Name", "Roll No"}, "Roll No"},
		{"muster alias", []string{"Roll No as per Attendance Muster"}, "Roll No as per Attendance Muster"},
		{"student no", []string{"Student No."}, "Student No."},
		{"none", []string{"Name", "Mobile"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveRoll(tt.keys); got != tt.want {
				t.Errorf("ResolveRoll(%v) = %q, want %q", tt.keys, got, tt.want)
			}
		})
	}
}

func TestRollOf(t *testing.T) {
	fields := map[string]string{"Roll No": " 42 ", "Name": "A"}
	if got := RollOf(fields); got != "42" {
		t.Errorf("RollOf alias = %q, want %q", got, "42")
	}

	// Canonical key wins over aliases.
	fields["Roll Number"] = "7"
	if got := RollOf(fields); got != "7" {
		t.Errorf("RollOf canonical = %q, want %q", got, "7")
	}

	if got := RollOf(map[string]string{"Name": "A"}); got != "" {
		t.Errorf("RollOf no roll = %q, want empty", got)
	}
}

func TestMetricKey(t *testing.T) {
	tests := []struct {
		metric Metric
		want   string
	}{
		{MetricTotal, "Jan Total"},
		{MetricAttended, "Jan Attended"},
		{MetricPercent, "Jan %"},
		{MetricStipend, "Jan Stipend"},
	}

	for _, tt := range tests {
		if got := MetricKey("Jan", tt.metric); got != tt.want {
			t.Errorf("MetricKey(Jan, %s) = %q, want %q", tt.metric, got, tt.want)
		}
	}
}

func TestParseMetricKey(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		wantMonth  string
		wantMetric Metric
		wantNil    bool
	}{
		{name: "canonical", key: "Jan Total", wantMonth: "Jan", wantMetric: MetricTotal},
		{name: "full month lower", key: "january attended", wantMonth: "Jan", wantMetric: MetricAttended},
		{name: "numeric month percent", key: "09 %", wantMonth: "Sep", wantMetric: MetricPercent},
		{name: "stipend", key: "December Stipend", wantMonth: "Dec", wantMetric: MetricStipend},
		{name: "not a month", key: "Grand Total", wantNil: true},
		{name: "not a metric", key: "Jan Remarks", wantNil: true},
		{name: "empty", key: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMetricKey(tt.key)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("ParseMetricKey(%q) = %+v, want nil", tt.key, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseMetricKey(%q) = nil", tt.key)
			}
			if got.Month != tt.wantMonth || got.Metric != tt.wantMetric {
				t.Errorf("ParseMetricKey(%q) = %+v, want {%s %s}", tt.key, got, tt.wantMonth, tt.wantMetric)
			}
		})
	}
}

func TestResolveMetricKey(t *testing.T) {
	keys := []string{"january total", "Jan Total", "Jan Attended"}

	// Exact canonical key wins over a parseable variant.
	if got := ResolveMetricKey(keys, "Jan", MetricTotal); got != "Jan Total" {
		t.Errorf("canonical = %q, want %q", got, "Jan Total")
	}

	// Variant spelling is used when no canonical key exists.
	if got := ResolveMetricKey([]string{"january total"}, "Jan", MetricTotal); got != "january total" {
		t.Errorf("variant = %q, want %q", got, "january total")
	}

	// Fallback to canonical form when nothing matches, so writers
	// create the clean key.
	if got := ResolveMetricKey(nil, "Feb", MetricPercent); got != "Feb %" {
		t.Errorf("fallback = %q, want %q", got, "Feb %")
	}
}

func TestHasMetricKey(t *testing.T) {
	keys := []string{"january attended", "Name"}

	if !HasMetricKey(keys, "Jan", MetricAttended) {
		t.Error("expected variant spelling to count")
	}
	// No fallback: absence is absence.
	if HasMetricKey(keys, "Feb", MetricAttended) {
		t.Error("expected Feb attended to be absent")
	}
}

func TestFindHelpers(t *testing.T) {
	keys := []string{"Full Name", "Gender", "Sub Caste", "MONTH"}

	if got := Find(keys, "name"); got != "Full Name" {
		t.Errorf("Find = %q", got)
	}
	if got := Find(keys, "mobile"); got != "" {
		t.Errorf("Find miss = %q, want empty", got)
	}
	if got := FindExact(keys, "month"); got != "MONTH" {
		t.Errorf("FindExact = %q", got)
	}
	if got := FindExact(keys, "Sub-Caste"); got != "Sub Caste" {
		t.Errorf("FindExact normalized = %q", got)
	}
}
