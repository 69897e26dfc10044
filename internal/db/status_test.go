package db

import "testing"

func TestFieldTypeValid(t *testing.T) {
	for _, ft := range FieldTypes {
		if !ft.Valid() {
			t.Fatalf("%q should be valid", ft)
		}
	}
	for _, ft := range []FieldType{"", "html", "TEXT", "markdown"} {
		if ft.Valid() {
			t.Fatalf("%q should be rejected", ft)
		}
	}
}

func TestStatusValidators(t *testing.T) {
	cases := []struct {
		status         string
		editorial, job bool
	}{
		{StatusDraft, true, true},
		{StatusPublished, true, false},
		{JobStatusActive, false, true},
		{JobStatusClosed, false, true},
		{"archived", false, false},
		{"", false, false},
	}
	for _, tc := range cases {
		if got := ValidEditorialStatus(tc.status); got != tc.editorial {
			t.Errorf("ValidEditorialStatus(%q) = %v, want %v", tc.status, got, tc.editorial)
		}
		if got := ValidJobStatus(tc.status); got != tc.job {
			t.Errorf("ValidJobStatus(%q) = %v, want %v", tc.status, got, tc.job)
		}
	}
}
