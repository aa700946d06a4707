package surprise

import (
	"math"
	"strconv"
	"strings"

	"EconPull/internal/domain/models"
)

// magnitudeReplacer strips the decorations calendar magnitudes carry:
// percent signs, thousands separators, K/M/B unit suffixes, and the "<"
// prefix used for below-threshold readings.
var magnitudeReplacer = strings.NewReplacer("%", "", ",", "", "K", "", "M", "", "B", "", "<", "")

// ParseMagnitude coerces a raw magnitude cell to a 4-decimal float. Missing
// or unparsable values return nil: absence of a reading is data, not an
// error.
func ParseMagnitude(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(magnitudeReplacer.Replace(s), 64)
	if err != nil {
		return nil
	}
	v = math.Round(v*10000) / 10000
	return &v
}

// Diff returns actual-forecast, or nil when either side is missing.
func Diff(actual, forecast string) *float64 {
	a := ParseMagnitude(actual)
	f := ParseMagnitude(forecast)
	if a == nil || f == nil {
		return nil
	}
	d := math.Round((*a-*f)*10000) / 10000
	return &d
}

// Classify combines the criteria sign convention with the deviation to
// produce the ternary favorability label. A nil diff classifies neutral.
func Classify(criteria models.Criteria, diff *float64) models.Favorability {
	if diff == nil {
		return models.Neutral
	}
	switch criteria {
	case models.CriteriaPositive:
		switch {
		case *diff > 0:
			return models.Favorable
		case *diff < 0:
			return models.Unfavorable
		default:
			return models.Neutral
		}
	case models.CriteriaNegative:
		switch {
		case *diff < 0:
			return models.Favorable
		case *diff > 0:
			return models.Unfavorable
		default:
			return models.Neutral
		}
	default:
		return models.Neutral
	}
}
