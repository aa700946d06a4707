package usecase

import (
	"context"
	"fmt"

	"EconPull/internal/domain/models"
	domrepo "EconPull/internal/domain/repository"
	applogger "EconPull/pkg/logger"
	"EconPull/pkg/queue"
)

// ReconstructJobType is the queue message type for month reprocessing.
const ReconstructJobType = "calendar.reconstruct"

// ReconstructPayload identifies a single month page to reprocess.
type ReconstructPayload struct {
	Year  int    `json:"year"`
	Month string `json:"month"`
}

// PageLoader loads one rendered month page.
type PageLoader interface {
	LoadPage(year int, month string) (models.CalendarPage, error)
}

// ReconstructJob reprocesses a single month page off the queue and
// stores the reconstructed events.
type ReconstructJob struct {
	pages   PageLoader
	recon   *ReconstructUseCase
	enrich  *EnrichUseCase
	store   domrepo.DatasetStore
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

func NewReconstructJob(
	pages PageLoader,
	recon *ReconstructUseCase,
	enrich *EnrichUseCase,
	store domrepo.DatasetStore,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
) *ReconstructJob {
	return &ReconstructJob{
		pages:   pages,
		recon:   recon,
		enrich:  enrich,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

func (j *ReconstructJob) Name() string { return "reconstruct-month" }

func (j *ReconstructJob) Type() string { return ReconstructJobType }

func (j *ReconstructJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[ReconstructPayload](payload)
	if err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}
	if p.Year <= 0 || p.Month == "" {
		return fmt.Errorf("invalid payload: year=%d month=%q", p.Year, p.Month)
	}

	page, err := j.pages.LoadPage(p.Year, p.Month)
	if err != nil {
		j.metrics.RecordError("page_load")
		return err
	}

	events, err := j.recon.ReconstructPage(page)
	if err != nil {
		j.metrics.RecordError("reconstruct")
		return fmt.Errorf("reconstruct %s %d: %w", p.Month, p.Year, err)
	}

	events = j.enrich.Enrich(ctx, events)

	if err := j.store.StoreEvents(ctx, events); err != nil {
		j.metrics.RecordError("store_events")
		return fmt.Errorf("store events: %w", err)
	}

	j.logger.Info("month reprocessed",
		applogger.String("month", p.Month),
		applogger.Int("year", p.Year),
		applogger.Int("events", len(events)),
	)
	return nil
}

var _ queue.Job = (*ReconstructJob)(nil)
