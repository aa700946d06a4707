package usecase

import (
	"testing"
	"time"

	"EconPull/internal/domain/models"
	domrepo "EconPull/internal/domain/repository"
)

func bar(ts time.Time, close float64) models.PriceBar {
	return models.PriceBar{BarStart: ts, Pair: "EURUSD", Open: close, High: close, Low: close, Close: close}
}

func TestDeriveLag(t *testing.T) {
	t0 := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	bars := []models.PriceBar{
		// Deliberately out of order.
		bar(t0.Add(time.Hour), 1.05),
		bar(t0, 1.00),
		bar(t0.Add(2*time.Hour), 1.02),
	}

	out := DeriveLag(bars)
	if len(out) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(out))
	}
	if !out[0].BarStart.Equal(t0) {
		t.Fatalf("bars not sorted: first is %v", out[0].BarStart)
	}
	if out[0].PrevClose != nil || out[0].PctChange != nil {
		t.Fatalf("first bar must have no lag fields: %+v", out[0])
	}
	if out[1].PrevClose == nil || *out[1].PrevClose != 1.00 {
		t.Fatalf("unexpected prev close %v", out[1].PrevClose)
	}
	if out[1].PctChange == nil || *out[1].PctChange != (1.05-1.00)/1.00*100 {
		t.Fatalf("unexpected pct change %v", out[1].PctChange)
	}
	if out[2].PctChange == nil {
		t.Fatalf("third bar missing pct change")
	}
	want := (1.02 - 1.05) / 1.05 * 100
	if *out[2].PctChange != want {
		t.Fatalf("pct change = %v, want %v", *out[2].PctChange, want)
	}
}

func TestDeriveLagZeroPrevClose(t *testing.T) {
	t0 := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	out := DeriveLag([]models.PriceBar{bar(t0, 0), bar(t0.Add(time.Hour), 1.0)})
	if out[1].PrevClose == nil || *out[1].PrevClose != 0 {
		t.Fatalf("unexpected prev close %v", out[1].PrevClose)
	}
	if out[1].PctChange != nil {
		t.Fatalf("pct change undefined over a zero close, got %v", *out[1].PctChange)
	}
}

func event(ts time.Time, currency string) models.CalendarEvent {
	return models.CalendarEvent{
		Currency:     currency,
		Impact:       models.ImpactHigh,
		EventName:    "CPI m/m",
		Actual:       "0.4%",
		Forecast:     "0.2%",
		Timestamp:    ts,
		Criteria:     models.CriteriaPositive,
		Favorability: models.Favorable,
	}
}

func TestAlignJoinsOnBarBoundary(t *testing.T) {
	a := NewPriceAligner(domrepo.PeriodH1, nil)

	barStart := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	chg := 0.5
	bars := []models.PriceBar{{BarStart: barStart, Pair: "EURUSD", Close: 1.05, PctChange: &chg}}

	events := []models.CalendarEvent{event(barStart.Add(30*time.Minute), "USD")}
	records := a.Align(events, bars, "EURUSD")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if !rec.DateTime.Equal(barStart) {
		t.Fatalf("timestamp not truncated: %v", rec.DateTime)
	}
	if rec.PctChange == nil || *rec.PctChange != chg {
		t.Fatalf("pct change not joined: %v", rec.PctChange)
	}
	if rec.Diff == nil || *rec.Diff != 0.2 {
		t.Fatalf("diff = %v, want 0.2", rec.Diff)
	}
	if rec.GoodForCurrency != models.Favorable {
		t.Fatalf("favorability not carried: %d", rec.GoodForCurrency)
	}
}

func TestAlignKeepsUnmatchedEvents(t *testing.T) {
	a := NewPriceAligner(domrepo.PeriodH1, nil)

	ts := time.Date(2025, 1, 6, 8, 30, 0, 0, time.UTC)
	records := a.Align([]models.CalendarEvent{event(ts, "USD")}, nil, "EURUSD")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].PctChange != nil {
		t.Fatalf("unmatched event must keep nil pct change")
	}
}

func TestAlignStableOrder(t *testing.T) {
	a := NewPriceAligner(domrepo.PeriodH1, nil)

	ts := time.Date(2025, 1, 6, 8, 30, 0, 0, time.UTC)
	events := []models.CalendarEvent{
		event(ts.Add(time.Hour), "USD"),
		event(ts, "USD"),
		event(ts, "EUR"),
	}
	records := a.Align(events, nil, "EURUSD")
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Currency != "EUR" || records[1].Currency != "USD" {
		t.Fatalf("same-instant records not ordered by currency: %q %q", records[0].Currency, records[1].Currency)
	}
	if !records[2].DateTime.After(records[0].DateTime) {
		t.Fatalf("records not in timestamp order")
	}
}

func TestGroupByBarSumsSigns(t *testing.T) {
	ts := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	rec := func(fav models.Favorability) models.AlignedRecord {
		return models.AlignedRecord{DateTime: ts, Pair: "EURUSD", EventName: "CPI m/m", GoodForCurrency: fav}
	}

	// Opposing labels in one bar cancel out.
	out := GroupByBar([]models.AlignedRecord{rec(models.Favorable), rec(models.Unfavorable)})
	if len(out) != 1 {
		t.Fatalf("expected 1 grouped record, got %d", len(out))
	}
	if out[0].GoodForCurrency != models.Neutral {
		t.Fatalf("expected neutral sum, got %d", out[0].GoodForCurrency)
	}
	if out[0].EventName != "" || out[0].Actual != "" || out[0].Diff != nil {
		t.Fatalf("per-event fields not cleared: %+v", out[0])
	}

	// A majority keeps its sign.
	out = GroupByBar([]models.AlignedRecord{rec(models.Favorable), rec(models.Favorable), rec(models.Unfavorable)})
	if out[0].GoodForCurrency != models.Favorable {
		t.Fatalf("expected favorable sum, got %d", out[0].GoodForCurrency)
	}
}

func TestFilterPriced(t *testing.T) {
	chg := 0.5
	records := []models.AlignedRecord{
		{Pair: "EURUSD", PctChange: &chg},
		{Pair: "EURUSD"},
	}
	out := FilterPriced(records)
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	if out[0].PctChange == nil {
		t.Fatalf("kept record lost its pct change")
	}
}
