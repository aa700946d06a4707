package repository

import "time"

// Period represents the fixed bar duration of a price series.
type Period string

const (
	PeriodM30 Period = "M30"
	PeriodH1  Period = "H1"
	PeriodH4  Period = "H4"
	PeriodD1  Period = "D1"
)

// Duration returns the bar width for the period.
func (p Period) Duration() time.Duration {
	switch p {
	case PeriodM30:
		return 30 * time.Minute
	case PeriodH1:
		return time.Hour
	case PeriodH4:
		return 4 * time.Hour
	case PeriodD1:
		return 24 * time.Hour
	default:
		return time.Hour
	}
}

// Truncate rounds t down to the period boundary. This is the join key used to
// decide which trading bar a news release fell into.
func (p Period) Truncate(t time.Time) time.Time {
	return t.Truncate(p.Duration())
}

// IsValidPeriod returns true if p is a supported period.
func IsValidPeriod(p Period) bool {
	switch p {
	case PeriodM30, PeriodH1, PeriodH4, PeriodD1:
		return true
	default:
		return false
	}
}

// DefaultPeriod returns the default bar period.
func DefaultPeriod() Period { return PeriodH1 }

// NormalizePeriod converts raw string to a valid period (or default).
func NormalizePeriod(s string) Period {
	if s == "" {
		return DefaultPeriod()
	}
	p := Period(s)
	if IsValidPeriod(p) {
		return p
	}
	return DefaultPeriod()
}
