package calendar

import (
	"testing"
)

const samplePage = `
<table class="calendar__table">
  <tr class="calendar__row calendar__row--day-breaker">
    <td class="calendar__cell">MonJan 6</td>
  </tr>
  <tr class="calendar__row" data-event-id="137241">
    <td class="calendar__cell calendar__time">8:30am</td>
    <td class="calendar__cell calendar__currency">USD</td>
    <td class="calendar__cell calendar__impact">
      <span class="icon icon--ff-impact-red" title="High Impact Expected"></span>
    </td>
    <td class="calendar__cell calendar__event">Non-Farm Employment Change</td>
    <td class="calendar__cell calendar__actual">256K</td>
    <td class="calendar__cell calendar__forecast">160K</td>
    <td class="calendar__cell calendar__previous">212K</td>
  </tr>
  <tr class="calendar__row" data-event-id="137242">
    <td class="calendar__cell calendar__time"></td>
    <td class="calendar__cell calendar__currency">USD</td>
    <td class="calendar__cell calendar__impact">
      <span class="icon icon--ff-impact-ora" title="Medium Impact Expected"></span>
    </td>
    <td class="calendar__cell calendar__event">Unemployment Rate</td>
    <td class="calendar__cell calendar__actual">4.1%</td>
    <td class="calendar__cell calendar__forecast">4.2%</td>
    <td class="calendar__cell calendar__previous">4.2%</td>
  </tr>
  <tr class="calendar__row">
    <td class="calendar__cell calendar__time">All Day</td>
    <td class="calendar__cell calendar__currency">EUR</td>
    <td class="calendar__cell calendar__impact">
      <span class="icon icon--ff-impact-unknown"></span>
    </td>
    <td class="calendar__cell calendar__event">Eurogroup Meetings</td>
  </tr>
</table>`

func TestExtractRows(t *testing.T) {
	rows, err := NewExtractor().Extract(samplePage)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	// Date-group header: a single spacer cell.
	if len(rows[0].Cells) != 1 || rows[0].Cells[0] != "MonJan 6" {
		t.Fatalf("unexpected header row %+v", rows[0])
	}

	// Full event row keeps the 4-cell contract and its metadata.
	ev := rows[1]
	want := []string{"8:30am", "USD", "High", "Non-Farm Employment Change"}
	if len(ev.Cells) != len(want) {
		t.Fatalf("expected %d cells, got %+v", len(want), ev.Cells)
	}
	for i, cell := range want {
		if ev.Cells[i] != cell {
			t.Fatalf("cell %d: got %q, want %q", i, ev.Cells[i], cell)
		}
	}
	if ev.EventID != "137241" || ev.Actual != "256K" || ev.Forecast != "160K" || ev.Previous != "212K" {
		t.Fatalf("metadata not extracted: %+v", ev)
	}
}

func TestExtractTimeInheritedRow(t *testing.T) {
	rows, err := NewExtractor().Extract(samplePage)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	// An empty time cell contributes nothing, leaving 3 cells for the
	// carry-forward rules to fill in.
	ev := rows[2]
	want := []string{"USD", "Medium", "Unemployment Rate"}
	if len(ev.Cells) != len(want) {
		t.Fatalf("expected %d cells, got %+v", len(want), ev.Cells)
	}
	for i, cell := range want {
		if ev.Cells[i] != cell {
			t.Fatalf("cell %d: got %q, want %q", i, ev.Cells[i], cell)
		}
	}
}

func TestExtractUnknownImpactSentinel(t *testing.T) {
	rows, err := NewExtractor().Extract(samplePage)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	ev := rows[3]
	if len(ev.Cells) != 4 {
		t.Fatalf("expected 4 cells, got %+v", ev.Cells)
	}
	if ev.Cells[2] != "impact" {
		t.Fatalf("expected sentinel impact, got %q", ev.Cells[2])
	}
}

func TestExtractEmptyPage(t *testing.T) {
	rows, err := NewExtractor().Extract("<html><body></body></html>")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}
