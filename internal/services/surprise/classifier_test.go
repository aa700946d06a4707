package surprise

import (
	"testing"

	"EconPull/internal/domain/models"
)

func TestParseMagnitude(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"0.3%", 0.3},
		{"-0.2%", -0.2},
		{"<0.1%", 0.1},
		{"256K", 256},
		{"1.5M", 1.5},
		{"2B", 2},
		{"1,234", 1234},
		{" 4.1% ", 4.1},
		{"0.12345", 0.1235},
	}
	for _, tc := range cases {
		got := ParseMagnitude(tc.raw)
		if got == nil {
			t.Fatalf("ParseMagnitude(%q) = nil", tc.raw)
		}
		if *got != tc.want {
			t.Fatalf("ParseMagnitude(%q) = %v, want %v", tc.raw, *got, tc.want)
		}
	}
}

func TestParseMagnitudeMissing(t *testing.T) {
	for _, raw := range []string{"", "  ", "n/a", "Actual"} {
		if got := ParseMagnitude(raw); got != nil {
			t.Fatalf("ParseMagnitude(%q) = %v, want nil", raw, *got)
		}
	}
}

func TestDiff(t *testing.T) {
	d := Diff("0.4%", "0.2%")
	if d == nil || *d != 0.2 {
		t.Fatalf("Diff = %v, want 0.2", d)
	}
	if d := Diff("", "0.2%"); d != nil {
		t.Fatalf("expected nil diff for missing actual, got %v", *d)
	}
	if d := Diff("0.4%", ""); d != nil {
		t.Fatalf("expected nil diff for missing forecast, got %v", *d)
	}
}

func TestClassify(t *testing.T) {
	pos, neg, zero := 0.2, -0.2, 0.0
	cases := []struct {
		name     string
		criteria models.Criteria
		diff     *float64
		want     models.Favorability
	}{
		{"positive criteria, beat", models.CriteriaPositive, &pos, models.Favorable},
		{"positive criteria, miss", models.CriteriaPositive, &neg, models.Unfavorable},
		{"positive criteria, in line", models.CriteriaPositive, &zero, models.Neutral},
		{"negative criteria, beat", models.CriteriaNegative, &pos, models.Unfavorable},
		{"negative criteria, miss", models.CriteriaNegative, &neg, models.Favorable},
		{"negative criteria, in line", models.CriteriaNegative, &zero, models.Neutral},
		{"neutral criteria", models.CriteriaNeutral, &pos, models.Neutral},
		{"no reading", models.CriteriaPositive, nil, models.Neutral},
	}
	for _, tc := range cases {
		if got := Classify(tc.criteria, tc.diff); got != tc.want {
			t.Fatalf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}
