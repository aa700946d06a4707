package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"EconPull/internal/domain/models"
	"EconPull/internal/services/calendar"
)

// ReconstructUseCase turns calendar pages into event streams. Each page gets
// its own carry-forward state, so pages can run concurrently; results are
// concatenated and globally sorted before enrichment or alignment.
type ReconstructUseCase struct {
	extractor *calendar.Extractor
	recon     *calendar.Reconstructor
	workers   int
}

func NewReconstructUseCase(extractor *calendar.Extractor, recon *calendar.Reconstructor, workers int) *ReconstructUseCase {
	if workers <= 0 {
		workers = 4
	}
	return &ReconstructUseCase{extractor: extractor, recon: recon, workers: workers}
}

// ReconstructPage extracts and reconstructs a single page.
func (uc *ReconstructUseCase) ReconstructPage(page models.CalendarPage) ([]models.CalendarEvent, error) {
	rows, err := uc.extractor.Extract(page.HTML)
	if err != nil {
		return nil, fmt.Errorf("extract page %s %d: %w", page.Month, page.Year, err)
	}
	events, err := uc.recon.ReconstructTable(rows, page.Year)
	if err != nil {
		return nil, fmt.Errorf("reconstruct page %s %d: %w", page.Month, page.Year, err)
	}
	return events, nil
}

// ReconstructPages runs pages on a bounded worker pool and returns the merged
// event stream sorted by (timestamp, currency).
func (uc *ReconstructUseCase) ReconstructPages(ctx context.Context, pages []models.CalendarPage) ([]models.CalendarEvent, error) {
	type result struct {
		events []models.CalendarEvent
		err    error
	}

	jobs := make(chan models.CalendarPage)
	results := make(chan result, len(pages))

	var wg sync.WaitGroup
	for i := 0; i < uc.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for page := range jobs {
				events, err := uc.ReconstructPage(page)
				results <- result{events: events, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, page := range pages {
			select {
			case <-ctx.Done():
				return
			case jobs <- page:
			}
		}
	}()

	wg.Wait()
	close(results)

	var all []models.CalendarEvent
	for res := range results {
		if res.err != nil {
			return nil, res.err
		}
		all = append(all, res.events...)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	SortEvents(all)
	return all, nil
}

// SortEvents orders events by (timestamp, currency) in place.
func SortEvents(events []models.CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.Before(events[j].Timestamp)
		}
		return events[i].Currency < events[j].Currency
	})
}

// FilterEvents keeps events matching the configured currency and impact
// allow-lists. Empty lists allow everything.
func FilterEvents(events []models.CalendarEvent, currencies []string, impacts []models.Impact) []models.CalendarEvent {
	currencySet := make(map[string]struct{}, len(currencies))
	for _, c := range currencies {
		currencySet[c] = struct{}{}
	}
	impactSet := make(map[models.Impact]struct{}, len(impacts))
	for _, i := range impacts {
		impactSet[i] = struct{}{}
	}

	out := make([]models.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if len(currencySet) > 0 {
			if _, ok := currencySet[ev.Currency]; !ok {
				continue
			}
		}
		if len(impactSet) > 0 {
			if _, ok := impactSet[ev.Impact]; !ok {
				continue
			}
		}
		out = append(out, ev)
	}
	return out
}
