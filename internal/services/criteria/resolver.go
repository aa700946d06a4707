package criteria

import (
	"strings"

	"EconPull/internal/domain/models"
)

// The two usual-effect template phrases the calendar publishes. Anything else
// (including an empty or unavailable phrase) is inconclusive and stays
// neutral; matching is exact beyond trimming.
const (
	actualGreaterGood = "'Actual' greater than 'Forecast' is good for currency;"
	actualLessGood    = "'Actual' less than 'Forecast' is good for currency;"
)

// Resolve maps a usual-effect phrase to the deviation sign convention.
func Resolve(usualEffect string) models.Criteria {
	switch strings.TrimSpace(usualEffect) {
	case actualGreaterGood:
		return models.CriteriaPositive
	case actualLessGood:
		return models.CriteriaNegative
	default:
		return models.CriteriaNeutral
	}
}
