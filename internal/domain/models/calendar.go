package models

import "time"

// RawRow is one table row as extracted from the calendar page: an ordered
// list of cell texts. Its length alone (1, 4, 5, other) determines its role.
type RawRow []string

// TableRow is a RawRow plus the per-row metadata the full extractor can
// recover from the page (magnitude cells and the external event id). The
// reconstruction rules only look at Cells; metadata is carried onto the
// emitted event verbatim.
type TableRow struct {
	Cells    RawRow `json:"cells"`
	EventID  string `json:"event_id,omitempty"`
	Actual   string `json:"actual,omitempty"`
	Forecast string `json:"forecast,omitempty"`
	Previous string `json:"previous,omitempty"`
}

// Impact is the categorical severity of a calendar event, derived from the
// impact icon on the source page.
type Impact string

const (
	ImpactLow     Impact = "Low"
	ImpactMedium  Impact = "Medium"
	ImpactHigh    Impact = "High"
	ImpactHoliday Impact = "Holiday"
)

// Valid reports whether i belongs to the closed impact enumeration.
func (i Impact) Valid() bool {
	switch i {
	case ImpactLow, ImpactMedium, ImpactHigh, ImpactHoliday:
		return true
	default:
		return false
	}
}

// ParseImpact converts raw cell text to an Impact. ok is false for anything
// outside the enumeration (rows carrying such values are filtered, not errors).
func ParseImpact(s string) (Impact, bool) {
	i := Impact(s)
	return i, i.Valid()
}

// Criteria is the sign convention relating actual-vs-forecast deviation to
// currency favorability: +1 means actual>forecast is good for the currency,
// -1 the opposite, 0 unknown.
type Criteria int

const (
	CriteriaPositive Criteria = 1
	CriteriaNeutral  Criteria = 0
	CriteriaNegative Criteria = -1
)

// Favorability is the ternary surprise label: +1 good for the currency,
// -1 bad, 0 neutral/unknown.
type Favorability int

const (
	Favorable   Favorability = 1
	Neutral     Favorability = 0
	Unfavorable Favorability = -1
)

// CalendarPage is one month of rendered calendar HTML plus its nominal year.
// The year is always the page's own: a December page scraped in January still
// resolves against the year it was fetched for.
type CalendarPage struct {
	HTML  string
	Month string
	Year  int
}

// CalendarEvent is a fully reconstructed calendar row. date/time labels are
// kept raw (carry-forward values), the resolved instant lives in Timestamp.
type CalendarEvent struct {
	DateText  string    `json:"date_text"`
	TimeText  string    `json:"time_text"`
	Currency  string    `json:"currency"`
	Impact    Impact    `json:"impact"`
	EventName string    `json:"event"`
	EventID   string    `json:"event_id,omitempty"`
	Actual    string    `json:"actual,omitempty"`
	Forecast  string    `json:"forecast,omitempty"`
	Previous  string    `json:"previous,omitempty"`
	Timestamp time.Time `json:"timestamp_utc"`

	// Enriched in a second pass once the usual-effect lookup resolves.
	Criteria     Criteria     `json:"criteria"`
	Favorability Favorability `json:"good_for_currency"`
}
