package usecase

import (
	"context"
	"fmt"
	"time"

	"EconPull/internal/domain/models"
	domrepo "EconPull/internal/domain/repository"
	applogger "EconPull/pkg/logger"
)

// Pipeline runs the offline batch: calendar pages in, labeled price-aligned
// dataset out. Reconstruction happens per page in isolation; enrichment and
// alignment run once over the merged, globally sorted stream.
type Pipeline struct {
	pages   domrepo.PageSource
	prices  domrepo.PriceSource
	recon   *ReconstructUseCase
	enrich  *EnrichUseCase
	aligner *PriceAligner
	store   domrepo.DatasetStore
	pub     domrepo.Publisher
	metrics domrepo.Metrics
	logger  *applogger.Logger

	pairs      []string
	period     domrepo.Period
	currencies []string
	impacts    []models.Impact
}

// PipelineParams groups the batch configuration.
type PipelineParams struct {
	Pairs      []string
	Period     domrepo.Period
	Currencies []string
	Impacts    []models.Impact
}

func NewPipeline(
	pages domrepo.PageSource,
	prices domrepo.PriceSource,
	recon *ReconstructUseCase,
	enrich *EnrichUseCase,
	aligner *PriceAligner,
	store domrepo.DatasetStore,
	pub domrepo.Publisher,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
	params PipelineParams,
) *Pipeline {
	return &Pipeline{
		pages:      pages,
		prices:     prices,
		recon:      recon,
		enrich:     enrich,
		aligner:    aligner,
		store:      store,
		pub:        pub,
		metrics:    metrics,
		logger:     logger,
		pairs:      params.Pairs,
		period:     params.Period,
		currencies: params.Currencies,
		impacts:    params.Impacts,
	}
}

// Run executes one batch end to end.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()

	pages, err := p.pages.LoadPages(ctx)
	if err != nil {
		return fmt.Errorf("load pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no calendar pages found")
	}

	events, err := p.recon.ReconstructPages(ctx, pages)
	if err != nil {
		return fmt.Errorf("reconstruct: %w", err)
	}
	p.logger.Info("calendar reconstructed",
		applogger.Int("pages", len(pages)),
		applogger.Int("events", len(events)),
	)

	events = FilterEvents(events, p.currencies, p.impacts)
	events = p.enrich.Enrich(ctx, events)
	decisive := DropNeutral(events)
	p.logger.Info("events enriched",
		applogger.Int("kept", len(events)),
		applogger.Int("decisive", len(decisive)),
	)

	if p.store != nil {
		if err := p.store.StoreEvents(ctx, events); err != nil {
			return fmt.Errorf("store events: %w", err)
		}
	}

	for _, pair := range p.pairs {
		if err := p.alignPair(ctx, pair, decisive); err != nil {
			return err
		}
	}

	if p.metrics != nil {
		p.metrics.RecordLatency("batch", time.Since(start).Seconds())
	}
	p.logger.Info("batch complete", applogger.Duration("duration_ms", time.Since(start)))
	return nil
}

func (p *Pipeline) alignPair(ctx context.Context, pair string, events []models.CalendarEvent) error {
	bars, err := p.prices.LoadBars(ctx, pair, p.period)
	if err != nil {
		return fmt.Errorf("load bars %s: %w", pair, err)
	}
	bars = DeriveLag(bars)

	records := p.aligner.Align(events, bars, pair)
	p.logger.Info("pair aligned",
		applogger.String("pair", pair),
		applogger.Int("bars", len(bars)),
		applogger.Int("records", len(records)),
	)

	if p.store != nil {
		if err := p.store.StoreAligned(ctx, records); err != nil {
			return fmt.Errorf("store aligned %s: %w", pair, err)
		}
	}
	if p.pub != nil {
		if err := p.pub.PublishAligned(ctx, records); err != nil {
			return fmt.Errorf("publish aligned %s: %w", pair, err)
		}
	}
	return nil
}
