package calendar

import (
	"fmt"
	"regexp"
	"strings"

	"EconPull/internal/domain/models"
	domrepo "EconPull/internal/domain/repository"
)

// Date cells render the weekday and month-day on separate lines, but extracted
// text may arrive with the separator collapsed ("MonJan 6"), so the weekday
// token has no trailing word boundary.
var (
	weekdayRe = regexp.MustCompile(`(?i)\b(Mon|Tue|Wed|Thu|Fri|Sat|Sun)`)
	monthRe   = regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`)
)

// dateToken returns the weekday token if text looks like a date-group header
// (contains a weekday or month abbreviation).
func dateToken(text string) (string, bool) {
	if m := weekdayRe.FindString(text); m != "" {
		return m, true
	}
	if monthRe.MatchString(text) {
		return "", true
	}
	return "", false
}

// Reconstructor rebuilds full calendar events from sparsely rendered table
// rows. The source table emits the date once per visual group and the time
// once per time group; every following row inherits them until overwritten.
type Reconstructor struct {
	resolver *DateTimeResolver
	metrics  domrepo.Metrics
}

func NewReconstructor(resolver *DateTimeResolver, metrics domrepo.Metrics) *Reconstructor {
	return &Reconstructor{resolver: resolver, metrics: metrics}
}

// Reconstruct rebuilds events from bare cell-text rows for year.
func (r *Reconstructor) Reconstruct(rows []models.RawRow, year int) ([]models.CalendarEvent, error) {
	table := make([]models.TableRow, len(rows))
	for i, row := range rows {
		table[i] = models.TableRow{Cells: row}
	}
	return r.ReconstructTable(table, year)
}

// ReconstructTable folds over rows with carry-forward (date, time) state and
// emits fully populated events for year. Malformed rows are skipped, never
// raised: the table shape is not a contract. State is local to this call, so
// separate pages can be reconstructed concurrently and concatenated after.
func (r *Reconstructor) ReconstructTable(rows []models.TableRow, year int) ([]models.CalendarEvent, error) {
	if year <= 0 {
		return nil, fmt.Errorf("reconstruct: invalid year %d", year)
	}

	var currentDate, currentTime string
	events := make([]models.CalendarEvent, 0, len(rows))

	for _, row := range rows {
		cells := row.Cells
		if len(cells) == 1 || len(cells) == 5 {
			if token, ok := dateToken(cells[0]); ok {
				d := cells[0]
				if token != "" {
					d = strings.Replace(d, token, "", 1)
				}
				currentDate = strings.TrimSpace(strings.ReplaceAll(d, "\n", " "))
			}
		}
		if len(cells) == 4 {
			currentTime = strings.TrimSpace(cells[0])
		}
		if len(cells) == 5 {
			currentTime = strings.TrimSpace(cells[1])
		}

		if len(cells) <= 1 {
			continue
		}
		// Emission needs at least (currency, impact, event) trailing cells.
		if len(cells) < 3 {
			r.dropped("shape")
			continue
		}

		// Trailing cells are (currency, impact, event); impact outside the
		// enumeration marks a row we do not track.
		impact, ok := models.ParseImpact(cells[len(cells)-2])
		if !ok {
			r.dropped("impact")
			continue
		}
		if currentDate == "" || currentTime == "" {
			r.dropped("no_datetime")
			continue
		}

		currency := strings.TrimSpace(cells[len(cells)-3])
		if currency == "All" {
			// Cross-currency banner rows (holidays etc.), not tradable events.
			r.dropped("all_currency")
			continue
		}

		ts, err := r.resolver.Resolve(currentDate, currentTime, year)
		if err != nil {
			r.dropped("datetime")
			continue
		}

		events = append(events, models.CalendarEvent{
			DateText:  currentDate,
			TimeText:  currentTime,
			Currency:  currency,
			Impact:    impact,
			EventName: strings.TrimSpace(cells[len(cells)-1]),
			EventID:   row.EventID,
			Actual:    row.Actual,
			Forecast:  row.Forecast,
			Previous:  row.Previous,
			Timestamp: ts,
		})
		if r.metrics != nil {
			r.metrics.RecordEventReconstructed(currency)
		}
	}

	return events, nil
}

func (r *Reconstructor) dropped(reason string) {
	if r.metrics != nil {
		r.metrics.RecordRowDropped(reason)
	}
}
