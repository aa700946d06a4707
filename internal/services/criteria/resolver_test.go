package criteria

import (
	"testing"

	"EconPull/internal/domain/models"
)

func TestResolvePhrases(t *testing.T) {
	cases := []struct {
		phrase string
		want   models.Criteria
	}{
		{"'Actual' greater than 'Forecast' is good for currency;", models.CriteriaPositive},
		{"'Actual' less than 'Forecast' is good for currency;", models.CriteriaNegative},
		{"  'Actual' greater than 'Forecast' is good for currency;  ", models.CriteriaPositive},
		{"'Actual' greater than 'Forecast' is good for currency", models.CriteriaNeutral},
		{"No consistent effect", models.CriteriaNeutral},
		{"", models.CriteriaNeutral},
	}
	for _, tc := range cases {
		if got := Resolve(tc.phrase); got != tc.want {
			t.Fatalf("Resolve(%q) = %d, want %d", tc.phrase, got, tc.want)
		}
	}
}
