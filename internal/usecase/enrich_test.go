package usecase

import (
	"context"
	"testing"

	"EconPull/internal/domain/models"
)

type stubDetailSource struct {
	phrases map[string]string
}

func (s *stubDetailSource) UsualEffect(ctx context.Context, eventID string) string {
	return s.phrases[eventID]
}

func TestEnrichClassifiesEvents(t *testing.T) {
	details := &stubDetailSource{phrases: map[string]string{
		"1": "'Actual' greater than 'Forecast' is good for currency;",
		"2": "'Actual' less than 'Forecast' is good for currency;",
	}}
	uc := NewEnrichUseCase(details, nil)

	events := []models.CalendarEvent{
		{EventID: "1", Actual: "0.4%", Forecast: "0.2%"},
		{EventID: "2", Actual: "0.4%", Forecast: "0.2%"},
		{EventID: "3", Actual: "0.4%", Forecast: "0.2%"},
		{EventID: "1"},
	}
	out := uc.Enrich(context.Background(), events)

	if out[0].Criteria != models.CriteriaPositive || out[0].Favorability != models.Favorable {
		t.Fatalf("beat with positive criteria: %+v", out[0])
	}
	if out[1].Criteria != models.CriteriaNegative || out[1].Favorability != models.Unfavorable {
		t.Fatalf("beat with negative criteria: %+v", out[1])
	}
	// Unknown lookup stays neutral.
	if out[2].Criteria != models.CriteriaNeutral || out[2].Favorability != models.Neutral {
		t.Fatalf("unknown event id: %+v", out[2])
	}
	// Missing magnitudes classify neutral even with decisive criteria.
	if out[3].Favorability != models.Neutral {
		t.Fatalf("missing magnitudes: %+v", out[3])
	}
}

func TestEnrichNilDetailSource(t *testing.T) {
	uc := NewEnrichUseCase(nil, nil)
	out := uc.Enrich(context.Background(), []models.CalendarEvent{{EventID: "1", Actual: "1", Forecast: "2"}})
	if out[0].Criteria != models.CriteriaNeutral || out[0].Favorability != models.Neutral {
		t.Fatalf("expected neutral without a detail source: %+v", out[0])
	}
}

func TestDropNeutral(t *testing.T) {
	events := []models.CalendarEvent{
		{EventID: "1", Criteria: models.CriteriaPositive},
		{EventID: "2", Criteria: models.CriteriaNeutral},
		{EventID: "3", Criteria: models.CriteriaNegative},
	}
	out := DropNeutral(events)
	if len(out) != 2 {
		t.Fatalf("expected 2 events, got %d", len(out))
	}
	if out[0].EventID != "1" || out[1].EventID != "3" {
		t.Fatalf("unexpected survivors %+v", out)
	}
}
