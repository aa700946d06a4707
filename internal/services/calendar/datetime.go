package calendar

import (
	"fmt"
	"strings"
	"time"
)

// dateTimeLayout matches the calendar's "Jan 2" date label plus a 12-hour
// clock, e.g. "Jan 6 2025 8:30am".
const dateTimeLayout = "Jan 2 2006 3:04pm"

// placeholderTime stands in for events without a fixed clock time
// ("Day 1", "Tentative"): their nominal local midnight.
const placeholderTime = "12:00am"

// DateTimeResolver converts carried-forward (date_text, time_text) labels into
// absolute instants. The calendar renders times in the operator's local zone,
// so resolution is a two-stage conversion: parse naive, interpret in the local
// zone, then convert to UTC. The local zone is injectable so the conversion is
// deterministic under test.
type DateTimeResolver struct {
	loc *time.Location
}

// NewDateTimeResolver creates a resolver using loc as the display timezone.
// A nil loc falls back to the system zone.
func NewDateTimeResolver(loc *time.Location) *DateTimeResolver {
	if loc == nil {
		loc = time.Local
	}
	return &DateTimeResolver{loc: loc}
}

// Resolve returns the UTC instant for the given labels within year.
// Placeholder time labels ("Day N", "Tentative") resolve to local midnight
// and stay in the local zone: these events are date-only.
func (r *DateTimeResolver) Resolve(dateText, timeText string, year int) (time.Time, error) {
	if year <= 0 {
		return time.Time{}, fmt.Errorf("resolve datetime: invalid year %d", year)
	}
	dateText = strings.TrimSpace(dateText)
	timeText = strings.TrimSpace(timeText)
	if dateText == "" || timeText == "" {
		return time.Time{}, fmt.Errorf("resolve datetime: empty date or time label")
	}

	placeholder := strings.Contains(timeText, "Day") || strings.Contains(timeText, "Tentative")
	if placeholder {
		timeText = placeholderTime
	}

	local, err := time.ParseInLocation(dateTimeLayout, fmt.Sprintf("%s %d %s", dateText, year, timeText), r.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("resolve datetime %q %q: %w", dateText, timeText, err)
	}
	if placeholder {
		return local, nil
	}
	return local.UTC(), nil
}
