package calendar

import (
	"testing"
	"time"

	"EconPull/internal/domain/models"
)

func newTestReconstructor() *Reconstructor {
	return NewReconstructor(NewDateTimeResolver(time.UTC), nil)
}

func TestReconstructCarryForward(t *testing.T) {
	r := newTestReconstructor()

	rows := []models.RawRow{
		{"Mon\nJan 6", "8:30am", "USD", "High", "Non-Farm Employment Change"},
		{"USD", "High", "Unemployment Rate"},
		{"10:00am", "EUR", "Medium", "German Factory Orders"},
		{"EUR", "Low", "Italian Retail Sales"},
	}

	events, err := r.Reconstruct(rows, 2025)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}

	early := time.Date(2025, 1, 6, 8, 30, 0, 0, time.UTC)
	late := time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)

	// The second row inherits both date and time from the first.
	if !events[1].Timestamp.Equal(early) {
		t.Fatalf("inherited time: got %v, want %v", events[1].Timestamp, early)
	}
	if events[1].DateText != "Jan 6" || events[1].TimeText != "8:30am" {
		t.Fatalf("inherited labels: got %q %q", events[1].DateText, events[1].TimeText)
	}

	// The third row overwrites the time; the fourth inherits the new one.
	if !events[2].Timestamp.Equal(late) || !events[3].Timestamp.Equal(late) {
		t.Fatalf("time overwrite: got %v and %v, want %v", events[2].Timestamp, events[3].Timestamp, late)
	}
	if events[3].Currency != "EUR" || events[3].Impact != models.ImpactLow {
		t.Fatalf("unexpected trailing event %+v", events[3])
	}
}

func TestReconstructDateOverwrite(t *testing.T) {
	r := newTestReconstructor()

	rows := []models.RawRow{
		{"Mon\nJan 6", "8:30am", "USD", "High", "CPI m/m"},
		{"Tue\nJan 7"},
		{"9:00am", "GBP", "Medium", "Construction PMI"},
	}

	events, err := r.Reconstruct(rows, 2025)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	want := time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC)
	if !events[1].Timestamp.Equal(want) {
		t.Fatalf("got %v, want %v", events[1].Timestamp, want)
	}
	if events[1].DateText != "Jan 7" {
		t.Fatalf("date label not overwritten: %q", events[1].DateText)
	}
}

func TestReconstructCompactDateCell(t *testing.T) {
	// Extracted text can arrive with the weekday and date collapsed into
	// one token; the date header must still be recognized.
	r := newTestReconstructor()

	events, err := r.Reconstruct([]models.RawRow{
		{"MonJan 6", "8:30am", "USD", "High", "CPI m/m"},
		{"TueJan 7"},
		{"9:00am", "GBP", "Medium", "Construction PMI"},
	}, 2025)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].DateText != "Jan 6" {
		t.Fatalf("weekday not stripped: %q", events[0].DateText)
	}
	want := time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC)
	if !events[1].Timestamp.Equal(want) {
		t.Fatalf("got %v, want %v", events[1].Timestamp, want)
	}
}

func TestReconstructSkipsShortRows(t *testing.T) {
	// Two-cell rows have no (currency, impact, event) triple to emit, even
	// when the leading cell looks like a valid impact.
	r := newTestReconstructor()

	events, err := r.Reconstruct([]models.RawRow{
		{"Mon\nJan 6", "8:30am", "USD", "High", "CPI m/m"},
		{"High", "stray"},
		{"USD", "Medium", "Core CPI m/m"},
	}, 2025)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[1].EventName != "Core CPI m/m" {
		t.Fatalf("unexpected event after short row: %+v", events[1])
	}
}

func TestReconstructDropsUntrackedRows(t *testing.T) {
	r := newTestReconstructor()

	rows := []models.RawRow{
		// Event rows before any date header have no instant to resolve.
		{"USD", "High", "Orphan Event"},
		{"Mon\nJan 6", "8:30am", "USD", "High", "CPI m/m"},
		// Cross-currency banner rows are excluded.
		{"All", "Holiday", "Bank Holiday"},
		// Impact values outside the enumeration are filtered.
		{"USD", "impact", "Broken Icon Row"},
		{"USD", "Medium", "Core CPI m/m"},
	}

	events, err := r.Reconstruct(rows, 2025)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].EventName != "CPI m/m" || events[1].EventName != "Core CPI m/m" {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestReconstructTableCarriesMetadata(t *testing.T) {
	r := newTestReconstructor()

	rows := []models.TableRow{
		{Cells: models.RawRow{"Mon\nJan 6", "8:30am", "USD", "High", "CPI m/m"},
			EventID: "137241", Actual: "0.3%", Forecast: "0.2%", Previous: "0.4%"},
	}

	events, err := r.ReconstructTable(rows, 2025)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.EventID != "137241" || ev.Actual != "0.3%" || ev.Forecast != "0.2%" || ev.Previous != "0.4%" {
		t.Fatalf("metadata not carried: %+v", ev)
	}
}

func TestReconstructStateIsPerCall(t *testing.T) {
	r := newTestReconstructor()

	page := []models.RawRow{
		{"Mon\nJan 6", "8:30am", "USD", "High", "CPI m/m"},
		{"USD", "Medium", "Core CPI m/m"},
	}

	first, err := r.Reconstruct(page, 2025)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := r.Reconstruct(page, 2025)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("pass lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("row %d differs between passes", i)
		}
	}

	// A page starting without a date header must not inherit state from
	// the previous call.
	orphans, err := r.Reconstruct([]models.RawRow{{"USD", "High", "Orphan"}}, 2025)
	if err != nil {
		t.Fatalf("orphan pass: %v", err)
	}
	if len(orphans) != 0 {
		t.Fatalf("expected no events, got %d", len(orphans))
	}
}

func TestReconstructInvalidYear(t *testing.T) {
	r := newTestReconstructor()
	if _, err := r.Reconstruct(nil, 0); err == nil {
		t.Fatalf("expected error for zero year")
	}
	if _, err := r.Reconstruct(nil, -3); err == nil {
		t.Fatalf("expected error for negative year")
	}
}
