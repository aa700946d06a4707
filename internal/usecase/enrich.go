package usecase

import (
	"context"

	"EconPull/internal/domain/models"
	domrepo "EconPull/internal/domain/repository"
	"EconPull/internal/services/criteria"
	"EconPull/internal/services/surprise"
)

// EnrichUseCase attaches criteria and favorability to reconstructed events.
// Criteria comes from the per-event usual-effect lookup; a failed or unknown
// lookup stays neutral rather than erroring.
type EnrichUseCase struct {
	details domrepo.DetailSource
	metrics domrepo.Metrics
}

func NewEnrichUseCase(details domrepo.DetailSource, metrics domrepo.Metrics) *EnrichUseCase {
	return &EnrichUseCase{details: details, metrics: metrics}
}

// Enrich resolves criteria and classifies each event in place.
func (uc *EnrichUseCase) Enrich(ctx context.Context, events []models.CalendarEvent) []models.CalendarEvent {
	for i := range events {
		ev := &events[i]

		phrase := ""
		if uc.details != nil {
			phrase = uc.details.UsualEffect(ctx, ev.EventID)
		}
		ev.Criteria = criteria.Resolve(phrase)
		if ev.Criteria == models.CriteriaNeutral && uc.metrics != nil {
			uc.metrics.RecordNeutralCriteria()
		}

		ev.Favorability = surprise.Classify(ev.Criteria, surprise.Diff(ev.Actual, ev.Forecast))
	}
	return events
}

// DropNeutral removes events whose effect direction is unknown. The merge
// step runs on decisive events only.
func DropNeutral(events []models.CalendarEvent) []models.CalendarEvent {
	out := make([]models.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if ev.Criteria != models.CriteriaNeutral {
			out = append(out, ev)
		}
	}
	return out
}
